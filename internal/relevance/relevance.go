// Package relevance scores repository files against a free-form prompt
// so a bounded amount of context can be attached to it. Scoring is
// heuristic: path and filename mentions, keyword overlap, recent git
// activity, and a few file-type affinities.
package relevance

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Score is one candidate file with the reasons it matched.
type Score struct {
	Path    string   `json:"path"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// ScoreFiles ranks candidates against the prompt. activity maps paths
// to their recent commit counts for the recency boost. Only files with
// a positive score are returned, best first, truncated so the result
// fits the token budget (path length / 4 plus 10 tokens per entry).
func ScoreFiles(prompt string, candidates []string, activity map[string]int, budget int) []Score {
	promptLower := strings.ToLower(prompt)
	words := strings.Fields(promptLower)

	var scores []Score
	for _, path := range candidates {
		var score float64
		var reasons []string

		pathLower := strings.ToLower(path)
		fileName := strings.ToLower(filepath.Base(path))

		if strings.Contains(promptLower, pathLower) {
			score += 10
			reasons = append(reasons, "path mentioned")
		} else if strings.Contains(promptLower, fileName) {
			score += 5
			reasons = append(reasons, "filename mentioned")
		}

		for _, word := range words {
			if len(word) >= 3 && strings.Contains(pathLower, word) {
				score++
			}
		}

		if count, ok := activity[path]; ok {
			boost := float64(count)
			if boost > 5 {
				boost = 5
			}
			score += boost * 0.5
			if count >= 3 {
				reasons = append(reasons, fmt.Sprintf("%d recent commits", count))
			}
		}

		if relevantFileType(pathLower, promptLower) {
			score += 2
			reasons = append(reasons, "relevant file type")
		}

		if score > 0 {
			scores = append(scores, Score{Path: path, Score: score, Reasons: reasons})
		}
	}

	sortScores(scores)
	return truncateToBudget(scores, budget)
}

// sortScores orders by score descending; ties keep candidate order.
func sortScores(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
}

func truncateToBudget(scores []Score, budget int) []Score {
	used := 0
	var out []Score
	for _, s := range scores {
		cost := len(s.Path)/4 + 10
		if used+cost > budget {
			break
		}
		used += cost
		out = append(out, s)
	}
	return out
}

// relevantFileType matches a few prompt themes to file categories.
func relevantFileType(pathLower, promptLower string) bool {
	if strings.Contains(promptLower, "test") || strings.Contains(promptLower, "spec") {
		if strings.Contains(pathLower, "test") || strings.Contains(pathLower, "spec") {
			return true
		}
	}
	if strings.Contains(promptLower, "config") || strings.Contains(promptLower, "setting") {
		if strings.Contains(pathLower, "config") ||
			strings.HasSuffix(pathLower, ".toml") ||
			strings.HasSuffix(pathLower, ".yaml") ||
			strings.HasSuffix(pathLower, ".json") {
			return true
		}
	}
	if strings.Contains(promptLower, "error") || strings.Contains(promptLower, "bug") || strings.Contains(promptLower, "fix") {
		if strings.Contains(pathLower, "error") || strings.Contains(pathLower, "exception") {
			return true
		}
	}
	return false
}

// mentionExtensions are the suffixes that make a prompt word count as
// a file mention.
var mentionExtensions = map[string]struct{}{
	"rs": {}, "py": {}, "js": {}, "ts": {}, "jsx": {}, "tsx": {},
	"go": {}, "c": {}, "cpp": {}, "h": {}, "java": {}, "rb": {},
	"php": {}, "toml": {}, "yaml": {}, "json": {}, "md": {},
}

// MentionedFiles pulls path-looking words with a known extension out
// of the prompt, in order of appearance.
func MentionedFiles(prompt string) []string {
	var files []string
	for _, word := range strings.Fields(prompt) {
		cleaned := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) &&
				r != '/' && r != '.' && r != '_' && r != '-'
		})
		if !strings.Contains(cleaned, "/") && !strings.Contains(cleaned, ".") {
			continue
		}
		ext := strings.TrimPrefix(filepath.Ext(cleaned), ".")
		if ext == "" {
			continue
		}
		if _, ok := mentionExtensions[ext]; ok {
			files = append(files, cleaned)
		}
	}
	return files
}

var stopWords = map[string]struct{}{
	"the": {}, "was": {}, "were": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {},
	"might": {}, "must": {}, "can": {}, "are": {}, "for": {},
	"with": {}, "from": {}, "into": {}, "through": {}, "during": {},
	"before": {}, "after": {}, "above": {}, "below": {}, "between": {},
	"under": {}, "again": {}, "further": {}, "then": {}, "once": {},
	"here": {}, "there": {}, "when": {}, "where": {}, "why": {},
	"how": {}, "all": {}, "each": {}, "few": {}, "more": {},
	"most": {}, "other": {}, "some": {}, "such": {}, "nor": {},
	"not": {}, "only": {}, "own": {}, "same": {}, "than": {},
	"too": {}, "very": {}, "just": {}, "and": {}, "but": {},
	"because": {}, "until": {}, "while": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "what": {}, "which": {}, "who": {},
	"whom": {}, "its": {}, "our": {}, "you": {}, "your": {},
	"him": {}, "his": {}, "she": {}, "her": {}, "they": {},
	"them": {}, "their": {},
}

// Keywords lowercases the prompt, splits on non-word characters, and
// keeps words of three or more characters that are not stop words,
// deduplicated in order of first appearance.
func Keywords(prompt string) []string {
	fields := strings.FieldsFunc(strings.ToLower(prompt), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	seen := map[string]struct{}{}
	var keywords []string
	for _, w := range fields {
		if len(w) < 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		keywords = append(keywords, w)
	}
	return keywords
}

// tokenPunct is the punctuation set counted as near-token characters.
const tokenPunct = "(){}[];,.:<>=+-*/&|!@#$%^"

// EstimateTokens approximates how many LLM tokens text costs. It
// averages a character-count estimate (non-whitespace / 4) with a
// word-count estimate (words * 1.3 plus half the punctuation), which
// tracks code better than either alone.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	wordCount := len(strings.Fields(text))

	punctCount := 0
	charCount := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		charCount++
		if strings.ContainsRune(tokenPunct, r) {
			punctCount++
		}
	}

	charEstimate := (charCount + 3) / 4
	wordEstimate := int(float64(wordCount)*1.3) + punctCount/2

	return (charEstimate + wordEstimate) / 2
}
