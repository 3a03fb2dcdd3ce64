package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// CommandSchema pairs a command with the JSON Schema of its output.
type CommandSchema struct {
	Command      string                 `json:"command"`
	Description  string                 `json:"description"`
	OutputSchema map[string]interface{} `json:"output_schema"`
}

var schemaCmd = &cobra.Command{
	Use:   "schema <command>",
	Short: "Print the JSON schema for a command's output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := commandSchema(args[0])
		if err != nil {
			return err
		}
		payload, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func obj(properties map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": properties}
}

func arr(items map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"type": "array", "items": items}
}

func str() map[string]interface{} { return map[string]interface{}{"type": "string"} }

func integer() map[string]interface{} { return map[string]interface{}{"type": "integer"} }

func boolean() map[string]interface{} { return map[string]interface{}{"type": "boolean"} }

func nullable(s map[string]interface{}) map[string]interface{} {
	s["nullable"] = true
	return s
}

// relatedEntry is the {path, reason} shape shared by every related list.
func relatedEntry() map[string]interface{} {
	return obj(map[string]interface{}{
		"path":   str(),
		"reason": str(),
	})
}

func commandSchema(command string) (*CommandSchema, error) {
	switch command {
	case "status":
		return &CommandSchema{
			Command:     "status",
			Description: "Project status overview including git state, recent commits, and hot directories",
			OutputSchema: obj(map[string]interface{}{
				"project_name":    nullable(str()),
				"project_type":    nullable(str()),
				"branch":          str(),
				"is_dirty":        boolean(),
				"staged_count":    integer(),
				"modified_count":  integer(),
				"untracked_count": integer(),
				"recent_commits": arr(obj(map[string]interface{}{
					"sha":      str(),
					"message":  str(),
					"author":   str(),
					"time":     str(),
					"time_ago": str(),
				})),
				"hot_directories": arr(obj(map[string]interface{}{
					"path":         str(),
					"commit_count": integer(),
				})),
				"diff_stats": nullable(obj(map[string]interface{}{
					"insertions": integer(),
					"deletions":  integer(),
				})),
			}),
		}, nil
	case "map":
		return &CommandSchema{
			Command:     "map",
			Description: "Project structure with directory and file information",
			OutputSchema: obj(map[string]interface{}{
				"directories": map[string]interface{}{
					"type": "object",
					"additionalProperties": obj(map[string]interface{}{
						"path":        str(),
						"description": nullable(str()),
						"files": arr(obj(map[string]interface{}{
							"name":     str(),
							"language": nullable(str()),
							"symbols":  integer(),
						})),
					}),
				},
			}),
		}, nil
	case "summarize":
		fileSummary := obj(map[string]interface{}{
			"path":     str(),
			"language": nullable(str()),
			"lines":    integer(),
			"symbols": arr(obj(map[string]interface{}{
				"name": str(),
				"kind": map[string]interface{}{
					"type": "string",
					"enum": []string{
						"function", "method", "struct", "class", "enum",
						"interface", "trait", "const", "variable", "type", "module",
					},
				},
				"line":        integer(),
				"signature":   nullable(str()),
				"doc_comment": nullable(str()),
			})),
			"imports": arr(str()),
		})
		fileSummary["description"] = "File summary"

		dirSummary := obj(map[string]interface{}{
			"path":       str(),
			"file_count": integer(),
			"files":      arr(map[string]interface{}{"$ref": "#/oneOf/0"}),
		})
		dirSummary["description"] = "Directory summary"

		return &CommandSchema{
			Command:     "summarize",
			Description: "File or directory summary with symbols and imports",
			OutputSchema: map[string]interface{}{
				"type":  "object",
				"oneOf": []interface{}{fileSummary, dirSummary},
			},
		}, nil
	case "search":
		return &CommandSchema{
			Command:     "search",
			Description: "Search results from codebase",
			OutputSchema: obj(map[string]interface{}{
				"query": str(),
				"results": arr(obj(map[string]interface{}{
					"path":    str(),
					"line":    integer(),
					"column":  integer(),
					"text":    str(),
					"context": arr(str()),
				})),
			}),
		}, nil
	case "related":
		return &CommandSchema{
			Command:     "related",
			Description: "Files related to a given file through imports, reverse imports, co-changes, and tests",
			OutputSchema: obj(map[string]interface{}{
				"source":      str(),
				"imports":     arr(relatedEntry()),
				"imported_by": arr(relatedEntry()),
				"co_changed":  arr(relatedEntry()),
				"test_files":  arr(relatedEntry()),
			}),
		}, nil
	case "diff-context":
		return &CommandSchema{
			Command:     "diff-context",
			Description: "Diff analysis with context about modified functions and their callers",
			OutputSchema: obj(map[string]interface{}{
				"ref_name": str(),
				"files_changed": arr(obj(map[string]interface{}{
					"path":       str(),
					"insertions": integer(),
					"deletions":  integer(),
					"functions_modified": arr(obj(map[string]interface{}{
						"name":       str(),
						"kind":       str(),
						"start_line": integer(),
						"signature":  nullable(str()),
					})),
				})),
				"callers_affected": arr(obj(map[string]interface{}{
					"function_modified": str(),
					"called_from":       arr(str()),
				})),
			}),
		}, nil
	}
	return nil, fmt.Errorf("unknown command: %s. Available commands: status, map, summarize, search, related, diff-context", command)
}
