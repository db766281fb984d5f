package cmd

import (
	"database/sql"

	"github.com/DevRyuki/todo-with-cline/config"
	"github.com/DevRyuki/todo-with-cline/migrations"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openMigrationDB()
		if err != nil {
			return err
		}
		defer db.Close()

		return migrations.Up(cmd.Context(), db)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openMigrationDB()
		if err != nil {
			return err
		}
		defer db.Close()

		return migrations.Down(cmd.Context(), db)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openMigrationDB()
		if err != nil {
			return err
		}
		defer db.Close()

		return migrations.Status(cmd.Context(), db)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func openMigrationDB() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
