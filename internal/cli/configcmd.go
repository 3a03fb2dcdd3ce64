package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ctxkit/ctx/internal/config"
)

// ConfigValue is one key's effective setting.
type ConfigValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (c ConfigValue) String() string {
	if c.Value == "" {
		return "(not set)"
	}
	return c.Value
}

// ConfigUpdate reports a completed set operation.
type ConfigUpdate struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func (c ConfigUpdate) String() string {
	return fmt.Sprintf("Set %s = %s", c.Key, c.Value)
}

// ConfigListing is every settable key with its effective value.
type ConfigListing struct {
	Settings []ConfigValue `json:"settings"`
}

func (c ConfigListing) String() string {
	var b strings.Builder
	for i, s := range c.Settings {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s = %s", s.Key, s.Value)
	}
	return b.String()
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !knownConfigKey(key) {
			return fmt.Errorf("unknown config key: %s", key)
		}
		return printResult(ConfigValue{Key: key, Value: viper.GetString(key)})
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(".", key, value); err != nil {
			return err
		}
		return printResult(ConfigUpdate{Status: "updated", Key: key, Value: value})
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listing := ConfigListing{}
		for _, key := range config.Keys() {
			listing.Settings = append(listing.Settings, ConfigValue{
				Key:   key,
				Value: viper.GetString(key),
			})
		}
		return printResult(listing)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}

func knownConfigKey(key string) bool {
	for _, k := range config.Keys() {
		if k == key {
			return true
		}
	}
	return false
}
