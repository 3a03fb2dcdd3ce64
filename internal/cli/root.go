// Package cli wires the ctx commands. Commands gather data from the
// analysis packages and hand display to internal/output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ctxkit/ctx/internal/config"
	"github.com/ctxkit/ctx/internal/git"
	"github.com/ctxkit/ctx/internal/output"
)

var (
	flagFormat  string
	flagJSON    bool
	flagCompact bool
	flagTimeout int

	cfg = &config.Config{}

	// gitOps is swapped for a mock in tests.
	gitOps git.Operations = git.NewOperations()
)

// rootCmd is the base ctx command.
var rootCmd = &cobra.Command{
	Use:           "ctx",
	Short:         "Context tool for coding agents",
	Long:          "ctx extracts structural context from codebases: symbols, skeletons, imports, diff impact, and callers.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "human", "output format: human, json, or compact")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "JSON output (shorthand for --format json)")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact output (shorthand for --format compact)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "timeout in seconds for long operations (reserved)")

	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
}

// initConfig loads settings; flag values override file and env values
// through the viper bindings above.
func initConfig() {
	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not load config:", err)
		return
	}
	cfg = loaded
}

// outputFormat resolves the effective format from shorthands and config.
func outputFormat() output.Format {
	if flagJSON {
		return output.JSON
	}
	if flagCompact {
		return output.Compact
	}
	return output.ParseFormat(viper.GetString("format"))
}

// printResult renders a command's report on stdout.
func printResult(data interface{ String() string }) error {
	return output.Print(os.Stdout, data, outputFormat())
}
