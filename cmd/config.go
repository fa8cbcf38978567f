package cmd

import (
	"fmt"

	"github.com/bnema/discord-autochat/internal/adapters/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions, deps dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration",
	}

	cmd.AddCommand(
		newConfigCheckCmd(opts, deps),
		newConfigShowCmd(opts),
	)

	return cmd
}

func newConfigCheckCmd(opts *rootOptions, deps dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration, credentials and the message list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(cmd.Context(), opts, deps, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			messages, err := config.LoadMessages(app.cfg.MessagesFile)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"config ok: %d accounts, %d channels, %d messages, ai provider %s\n",
				len(app.credentials), len(app.channels), len(messages), app.cfg.AI.Provider,
			)
			return err
		},
	}
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			rendered, err := config.RenderTOML(cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", cfg.Path, rendered)
			return err
		},
	}
}
