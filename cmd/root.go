package cmd

import (
	"github.com/bnema/discord-autochat/internal/adapters/config"
	"github.com/bnema/discord-autochat/internal/version"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd(defaultDependencies()).Execute()
}

type rootOptions struct {
	configPath   string
	messagesPath string
	envFile      string
}

func newRootCmd(deps dependencies) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           version.Name,
		Short:         "autochat: keep chat accounts active in a set of channels",
		Long:          "autochat cycles through Discord account tokens, posting messages from a list and replying to recent messages with AI-generated text.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the configuration file (json, toml or yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.messagesPath, "messages", "", "Path to the message list (overrides messagesFile)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded before reading configuration")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(opts, deps),
		newConfigCmd(opts, deps),
		newStatusCmd(opts, deps),
	)

	return rootCmd
}
