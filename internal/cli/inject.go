package cli

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctxkit/ctx/internal/lang"
	"github.com/ctxkit/ctx/internal/relevance"
	"github.com/ctxkit/ctx/internal/walker"
)

// injectMode says where the built context goes relative to the prompt.
type injectMode int

const (
	injectPrepend injectMode = iota
	injectAppend
	injectWrap
)

func parseInjectMode(s string) (injectMode, error) {
	switch strings.ToLower(s) {
	case "prepend":
		return injectPrepend, nil
	case "append":
		return injectAppend, nil
	case "wrap":
		return injectWrap, nil
	}
	return 0, fmt.Errorf("invalid mode %q: use prepend, append, or wrap", s)
}

var (
	flagInjectBudget int
	flagInjectMode   string
)

var injectCmd = &cobra.Command{
	Use:   "inject",
	Short: "Attach project context to a prompt read from stdin",
	Long:  "inject reads a prompt from stdin and emits it with a token-budgeted context block: project identity, recent file activity, files the prompt mentions, and files scored as relevant.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseInjectMode(flagInjectMode)
		if err != nil {
			return err
		}

		budget := flagInjectBudget
		if !cmd.Flags().Changed("budget") {
			budget = cfg.Inject.Budget
		}

		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		prompt := string(raw)

		context := buildContext(".", prompt, budget, false)
		_, err = io.WriteString(cmd.OutOrStdout(), injectOutput(prompt, context, mode))
		return err
	},
}

func init() {
	injectCmd.Flags().IntVarP(&flagInjectBudget, "budget", "b", 2000, "maximum tokens to spend on context")
	injectCmd.Flags().StringVarP(&flagInjectMode, "mode", "m", "prepend", "where to put context: prepend, append, or wrap")
	rootCmd.AddCommand(injectCmd)
}

// injectOutput combines the prompt and context per the chosen mode.
// The prompt passes through verbatim; separators keep the two halves
// distinguishable for whatever consumes the stream next.
func injectOutput(prompt, context string, mode injectMode) string {
	switch mode {
	case injectAppend:
		return prompt + "---\n" + context + "\n"
	case injectWrap:
		return "[CTX-START]\n" + context + "\n[CTX-END]\n" + prompt
	default:
		return context + "\n---\n" + prompt
	}
}

// buildContext assembles bracketed context lines for a prompt, stopping
// when the token budget is spent. Sections in priority order: project
// header, recent activity, uncommitted stats, mentioned files, scored
// relevant files, keywords. Git failures degrade sections, never fail.
func buildContext(dir, prompt string, budget int, includeUncommitted bool) string {
	var parts []string
	used := 0

	projectName := lang.DetectProjectName(dir)
	if projectName == "" {
		projectName = "unknown"
	}
	projectType := lang.DetectProjectType(dir)
	if projectType == "" {
		projectType = "unknown"
	}

	status, statusErr := gitOps.Status(dir)
	gitInfo := "no-git"
	if statusErr == nil {
		dirty := ""
		if status.IsDirty {
			dirty = "*"
		}
		gitInfo = fmt.Sprintf("branch=%s%s", status.Branch, dirty)
	}

	header := fmt.Sprintf("[CTX: project=%s lang=%s %s]", projectName, projectType, gitInfo)
	used += relevance.EstimateTokens(header)
	parts = append(parts, header)

	if statusErr == nil {
		if activity, err := gitOps.RecentFileActivity(dir, 5); err == nil {
			for i, file := range activity {
				if i == 3 {
					break
				}
				line := fmt.Sprintf("[RECENT: %s modified %s]", file.Path, file.LastModified)
				cost := relevance.EstimateTokens(line)
				if used+cost > budget {
					break
				}
				used += cost
				parts = append(parts, line)
			}
		}

		if includeUncommitted {
			if changes, err := gitOps.ChangedFiles(dir, "HEAD"); err == nil {
				ins, del := 0, 0
				for _, c := range changes {
					ins += c.Insertions
					del += c.Deletions
				}
				if ins > 0 || del > 0 {
					line := fmt.Sprintf("[UNCOMMITTED: +%d -%d]", ins, del)
					cost := relevance.EstimateTokens(line)
					if used+cost <= budget {
						used += cost
						parts = append(parts, line)
					}
				}
			}
		}
	}

	for i, file := range relevance.MentionedFiles(prompt) {
		if i == 5 {
			break
		}
		line := fmt.Sprintf("[MENTIONED: %s]", file)
		cost := relevance.EstimateTokens(line)
		if used+cost > budget {
			break
		}
		used += cost
		parts = append(parts, line)
	}

	keywords := relevance.Keywords(prompt)
	if len(keywords) > 0 && statusErr == nil {
		for i, scored := range scoreProjectFiles(dir, prompt, budget-used) {
			if i == 5 {
				break
			}
			line := fmt.Sprintf("[RELEVANT: %s (%s)]", scored.Path, strings.Join(scored.Reasons, ", "))
			cost := relevance.EstimateTokens(line)
			if used+cost > budget {
				break
			}
			used += cost
			parts = append(parts, line)
		}
	}

	if len(keywords) > 0 && used < budget {
		if len(keywords) > 10 {
			keywords = keywords[:10]
		}
		line := fmt.Sprintf("[KEYWORDS: %s]", strings.Join(keywords, ", "))
		if used+relevance.EstimateTokens(line) <= budget {
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, "\n")
}

// scoreProjectFiles walks dir and ranks its files against the prompt,
// seeding the recency boost from git history.
func scoreProjectFiles(dir, prompt string, budget int) []relevance.Score {
	var candidates []string
	_ = walker.Walk(dir, walker.Options{}, func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(dir, path); err == nil {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
		return nil
	})

	activity := map[string]int{}
	if recent, err := gitOps.RecentFileActivity(dir, 50); err == nil {
		for _, a := range recent {
			activity[a.Path] = a.CommitCount
		}
	}

	return relevance.ScoreFiles(prompt, candidates, activity, budget)
}
