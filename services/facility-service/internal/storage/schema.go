package storage

import (
	"context"
	_ "embed"

	"github.com/md-rashed-zaman/facilitycal/libs/db"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *db.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
