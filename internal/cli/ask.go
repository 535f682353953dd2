package cli

import (
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mech-ai/internal/config"
)

func newAskCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <mensagem>",
		Short: "Send one message and print the JSON response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			a, err := openApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			return ask(ctx, cmd.OutOrStdout(), a.Chat, strings.Join(args, " "))
		},
	}
}
