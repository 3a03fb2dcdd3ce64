package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctxkit/ctx/internal/lang"
)

var (
	// Version information - typically set via ldflags at build time
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

// VersionInfo advertises the binary's version and capabilities so
// agents can discover what this build supports.
type VersionInfo struct {
	Version       string   `json:"version"`
	GitCommit     string   `json:"git_commit"`
	BuildDate     string   `json:"build_date"`
	Languages     []string `json:"languages"`
	OutputFormats []string `json:"output_formats"`
	Commands      []string `json:"commands"`
}

func (v VersionInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ctx %s\n", v.Version)
	fmt.Fprintf(&b, "Git commit: %s\n", v.GitCommit)
	fmt.Fprintf(&b, "Build date: %s\n", v.BuildDate)
	fmt.Fprintf(&b, "\nLanguages: %s\n", strings.Join(v.Languages, ", "))
	fmt.Fprintf(&b, "Output formats: %s\n", strings.Join(v.OutputFormats, ", "))
	fmt.Fprintf(&b, "Commands: %s", strings.Join(v.Commands, ", "))
	return b.String()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ctx",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := VersionInfo{
			Version:       Version,
			GitCommit:     GitCommit,
			BuildDate:     BuildDate,
			Languages:     lang.Names(),
			OutputFormats: []string{"human", "json", "compact"},
			Commands:      commandNames(),
		}
		return printResult(info)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func commandNames() []string {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	return names
}
