package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mech-ai/internal/app"
	"github.com/BruksfildServices01/mech-ai/internal/config"
	"github.com/BruksfildServices01/mech-ai/internal/dto"
	"github.com/BruksfildServices01/mech-ai/internal/httperr"
)

type processor interface {
	ProcessMessage(ctx context.Context, message string) (*dto.ChatResponse, error)
}

// NewRootCmd builds the mechai command tree.
func NewRootCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "mechai",
		Short:         "Registro e busca de serviços da oficina em linguagem natural",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(cfg, log),
		newMigrateCmd(cfg, log),
		newAskCmd(cfg, log),
		newChatCmd(cfg, log),
	)

	return root
}

func openApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app.App, error) {
	return app.New(ctx, cfg, log)
}

// render prints the response, or the error in the same shape the API
// returns it.
func render(w io.Writer, resp *dto.ChatResponse, err error) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err != nil {
		_, code, message := httperr.Classify(err)
		return enc.Encode(httperr.HTTPError{Success: false, Code: code, Message: message})
	}
	return enc.Encode(resp)
}
