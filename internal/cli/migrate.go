package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mech-ai/internal/config"
	dbpkg "github.com/BruksfildServices01/mech-ai/internal/db"
)

func newMigrateCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// NewDB migra antes de retornar
			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Banco de dados inicializado.")
			return nil
		},
	}
}
