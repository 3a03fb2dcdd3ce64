package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// defaultConfigFile is written by ctx init. Values match the built-in
// defaults so the file documents what can be tuned.
const defaultConfigFile = `# ctx configuration

# Default output format: human, json, or compact
format: human

summarize:
  # Directory depth for directory summaries
  depth: 1

search:
  # Surrounding lines included with each result
  context_lines: 2

map:
  # Traversal depth for project maps
  depth: 3

inject:
  # Token budget for injected context
  budget: 2000
`

// InitResult reports what init did.
type InitResult struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

func (r InitResult) String() string {
	if r.Status == "exists" {
		return fmt.Sprintf("%s already exists", r.Path)
	}
	return fmt.Sprintf("Initialized %s", r.Path)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .ctx.yaml in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := initProject(".")
		if err != nil {
			return err
		}
		return printResult(result)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func initProject(dir string) (InitResult, error) {
	path := filepath.Join(dir, ".ctx.yaml")
	if _, err := os.Stat(path); err == nil {
		return InitResult{Status: "exists", Path: path}, nil
	}
	if err := os.WriteFile(path, []byte(defaultConfigFile), 0o644); err != nil {
		return InitResult{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return InitResult{Status: "created", Path: path}, nil
}
