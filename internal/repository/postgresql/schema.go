package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates any missing tables and indexes. It is safe to run on
// every start and joins the transaction carried by ctx, if any.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	q := GetQuerier(ctx, db)

	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
