package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mech-ai/internal/config"
)

const exitWord = "sair"

func newChatCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive session, type 'sair' to quit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			a, err := openApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			return repl(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), a.Chat)
		},
	}
}

func ask(ctx context.Context, out io.Writer, p processor, message string) error {
	resp, err := p.ProcessMessage(ctx, message)
	fmt.Fprintln(out, "Resposta do Mech-AI:")
	return render(out, resp, err)
}

// repl reads one message per line until "sair", EOF or ctx is done.
// Processing errors are printed and the session continues.
func repl(ctx context.Context, in io.Reader, out io.Writer, p processor) error {
	fmt.Fprintln(out, "Bem-vindo ao Mech-AI!")
	fmt.Fprintf(out, "Digite sua pergunta ou '%s' para encerrar.\n", exitWord)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Você: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, exitWord) {
			return nil
		}
		if line == "" {
			continue
		}

		if err := ask(ctx, out, p, line); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
