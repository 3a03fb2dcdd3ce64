package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctxkit/ctx/internal/lang"
)

// Capabilities is the discovery document agents read to learn what
// this binary can do without trial and error.
type Capabilities struct {
	Name          string           `json:"name"`
	Version       string           `json:"version"`
	Description   string           `json:"description"`
	Repository    string           `json:"repository"`
	License       string           `json:"license"`
	Languages     []string         `json:"languages"`
	Integrations  Integrations     `json:"integrations"`
	Tools         []ToolDefinition `json:"tools"`
	OutputFormats []string         `json:"output_formats"`
	ExitCodes     ExitCodes        `json:"exit_codes"`
}

// Integrations flags the agent-facing surfaces this build ships.
type Integrations struct {
	AgentSkills      bool `json:"agent_skills"`
	PromptHooks      bool `json:"prompt_hooks"`
	StructuredOutput bool `json:"structured_output"`
	JSONSchemas      bool `json:"json_schemas"`
}

// ExitCodes documents the process exit conventions.
type ExitCodes struct {
	Success int `json:"success"`
	Error   int `json:"error"`
}

// ToolDefinition describes one command in a form agents can match
// against a task.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Usage       string                 `json:"usage"`
	WhenToUse   string                 `json:"when_to_use"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "Describe this tool's commands for agent discovery",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := json.MarshalIndent(capabilities(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
		return err
	},
}

func init() {
	rootCmd.AddCommand(capabilitiesCmd)
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func capabilities() Capabilities {
	return Capabilities{
		Name:        "ctx",
		Version:     Version,
		Description: "Context tool for coding agents. Provides AST-aware codebase analysis using tree-sitter.",
		Repository:  "https://github.com/ctxkit/ctx",
		License:     "MIT",
		Languages:   lang.Names(),
		Integrations: Integrations{
			AgentSkills:      true,
			PromptHooks:      true,
			StructuredOutput: true,
			JSONSchemas:      true,
		},
		OutputFormats: []string{"human", "json", "compact"},
		ExitCodes:     ExitCodes{Success: 0, Error: 1},
		Tools: []ToolDefinition{
			{
				Name:        "status",
				Description: "Project status overview including git branch, recent commits, and hot directories",
				Usage:       "ctx status [--json]",
				WhenToUse:   "When first exploring a codebase or checking project state",
				InputSchema: objectSchema(map[string]interface{}{}),
			},
			{
				Name:        "map",
				Description: "Show project directory structure with file counts. Better than ls/find.",
				Usage:       "ctx map [path] [--depth N] [--json]",
				WhenToUse:   "When understanding codebase layout and directory structure",
				InputSchema: objectSchema(map[string]interface{}{
					"path":  map[string]interface{}{"type": "string", "description": "Path to map"},
					"depth": map[string]interface{}{"type": "integer", "description": "Maximum depth"},
				}),
			},
			{
				Name:        "summarize",
				Description: "Extract symbols (functions, classes, etc.) from files using tree-sitter AST parsing",
				Usage:       "ctx summarize <paths...> [--skeleton] [--depth N] [--json]",
				WhenToUse:   "When you need to understand file structure without reading entire files",
				InputSchema: objectSchema(map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Files/directories to summarize",
					},
					"skeleton": map[string]interface{}{"type": "boolean", "description": "Show only signatures"},
					"depth":    map[string]interface{}{"type": "integer", "description": "Max depth for directories"},
				}, "paths"),
			},
			{
				Name:        "search",
				Description: "Search codebase for text, symbol definitions (--symbol), or function callers (--caller). The --caller flag uses AST analysis and is impossible with grep.",
				Usage:       "ctx search <query> [--symbol] [--caller] [-C N] [--json]",
				WhenToUse:   "When finding where something is defined (--symbol) or who calls a function (--caller)",
				InputSchema: objectSchema(map[string]interface{}{
					"query":   map[string]interface{}{"type": "string", "description": "Search query"},
					"symbol":  map[string]interface{}{"type": "boolean", "description": "Find symbol definitions only"},
					"caller":  map[string]interface{}{"type": "boolean", "description": "Find function callers (AST-based)"},
					"context": map[string]interface{}{"type": "integer", "description": "Lines of context"},
				}, "query"),
			},
			{
				Name:        "related",
				Description: "Find files related to a given file through imports, reverse imports, git co-changes, and test associations",
				Usage:       "ctx related <file> [--json]",
				WhenToUse:   "When understanding file dependencies and what else might be affected by changes",
				InputSchema: objectSchema(map[string]interface{}{
					"file": map[string]interface{}{"type": "string", "description": "File to find relations for"},
				}, "file"),
			},
			{
				Name:        "diff-context",
				Description: "Show git diff with expanded function context. Better than raw git diff.",
				Usage:       "ctx diff-context [ref] [--json]",
				WhenToUse:   "When reviewing changes and understanding what functions were modified",
				InputSchema: objectSchema(map[string]interface{}{
					"git_ref": map[string]interface{}{"type": "string", "description": "Git ref to diff against"},
				}),
			},
			{
				Name:        "inject",
				Description: "Attach token-budgeted project context to a prompt read from stdin",
				Usage:       "ctx inject [--budget N] [--mode prepend|append|wrap]",
				WhenToUse:   "When enriching a prompt with project, git, and relevance context",
				InputSchema: objectSchema(map[string]interface{}{
					"budget": map[string]interface{}{"type": "integer", "description": "Maximum context tokens"},
					"mode":   map[string]interface{}{"type": "string", "description": "Context placement"},
				}),
			},
			{
				Name:        "schema",
				Description: "Get JSON schema for a command's output format",
				Usage:       "ctx schema <command>",
				WhenToUse:   "When you need to understand the structure of JSON output",
				InputSchema: objectSchema(map[string]interface{}{
					"command": map[string]interface{}{"type": "string", "description": "Command name"},
				}, "command"),
			},
			{
				Name:        "version",
				Description: "Show version and supported languages/features",
				Usage:       "ctx version [--json]",
				WhenToUse:   "When checking ctx capabilities",
				InputSchema: objectSchema(map[string]interface{}{}),
			},
		},
	}
}
