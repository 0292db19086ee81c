package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func createTagsTable(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	quotedTable := pgx.Identifier{tableName}.Sanitize()
	indexFilename := pgx.Identifier{fmt.Sprintf("idx_%s_filename", tableName)}.Sanitize()
	indexTag := pgx.Identifier{fmt.Sprintf("idx_%s_tag", tableName)}.Sanitize()

	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			tag TEXT,
			filename TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS %s ON %s (filename);

		CREATE INDEX IF NOT EXISTS %s ON %s (tag)
		WHERE (tag IS NOT NULL);
	`,
		quotedTable,
		indexFilename, quotedTable,
		indexTag, quotedTable,
	)

	_, err := pool.Exec(ctx, sql)
	if err != nil {
		return fmt.Errorf("create tags table: %w", err)
	}
	return nil
}
