package cmd

import (
	"context"
	"fmt"

	statusadapter "github.com/bnema/discord-autochat/internal/adapters/render/status"
	"github.com/bnema/discord-autochat/internal/application"
	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *rootOptions, deps dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Log in with every account once and show identity and channel access",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(cmd.Context(), opts, deps, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			results := make([]application.AccountHealth, 0, len(app.credentials))
			err = runCheckProgress(cmd.Context(), cmd.ErrOrStderr(), len(app.credentials), func(ctx context.Context, step func(int, string)) error {
				for i, credential := range app.credentials {
					step(i, credential.Redacted())
					results = append(results, application.CheckAccounts(ctx, []domain.Credential{credential}, app.channels, deps.platforms, nil)...)
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			rendered, err := deps.statusRenderer(results, statusadapter.RenderOptions{})
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}
