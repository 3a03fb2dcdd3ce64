package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// hookInput is the JSON a coding agent's prompt hook writes to stdin.
type hookInput struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"session_id,omitempty"`
}

// hookOutput is the hook protocol envelope the agent reads back.
type hookOutput struct {
	HookSpecificOutput hookSpecificOutput `json:"hookSpecificOutput"`
}

type hookSpecificOutput struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

var flagHookBudget int

var hookInjectCmd = &cobra.Command{
	Use:   "hook-inject",
	Short: "Prompt-submit hook handler (reads JSON from stdin)",
	Long:  "hook-inject reads a {\"prompt\": ...} JSON object from stdin and replies with the hook envelope carrying additional context, including uncommitted diff stats.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		budget := flagHookBudget
		if !cmd.Flags().Changed("budget") {
			budget = cfg.Inject.Budget
		}
		return runHookInject(cmd.InOrStdin(), cmd.OutOrStdout(), budget)
	},
}

func init() {
	hookInjectCmd.Flags().IntVarP(&flagHookBudget, "budget", "b", 2000, "maximum tokens to spend on context")
	rootCmd.AddCommand(hookInjectCmd)
}

func runHookInject(in io.Reader, out io.Writer, budget int) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	var input hookInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Errorf("invalid hook input: %w", err)
	}

	context := buildContext(".", input.Prompt, budget, true)

	payload, err := json.Marshal(hookOutput{
		HookSpecificOutput: hookSpecificOutput{
			HookEventName:     "UserPromptSubmit",
			AdditionalContext: context,
		},
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(payload))
	return err
}
