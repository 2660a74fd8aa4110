package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/imobo/imobo/internal/config"
	"github.com/imobo/imobo/internal/database"
)

// app holds the shared handles subcommands need. Populated by the root
// command's PersistentPreRunE, so every command runs against a live database.
type app struct {
	cfg *config.Config
	db  *sql.DB
}

var a app

var rootCmd = &cobra.Command{
	Use:   "imoboctl",
	Short: "Operations CLI for the imobo billing backend",
	Long: `imoboctl manages the imobo backend directly against its database:
contracts, tenants, owners, payment schedules and listing-portal lead
imports. Database access is configured through the same environment
variables billingd uses (see internal/config).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			slog.Debug("no .env file loaded", "error", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		a = app{cfg: cfg, db: db}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if a.db != nil {
			a.db.Close()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
