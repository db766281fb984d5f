// Package migrations embeds the goose SQL migrations and exposes helpers to
// run them against an open database handle.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

func setup() error {
	goose.SetBaseFS(embedMigrations)
	return goose.SetDialect("mysql")
}

func Up(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func Down(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.DownContext(ctx, db, ".")
}

func Status(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, ".")
}
