package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// users ведёт сервис аутентификации, здесь таблица создаётся только для локального запуска.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		username   TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name  TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id           BIGSERIAL PRIMARY KEY,
		public_id    TEXT NOT NULL,
		author_id    TEXT NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL,
		body         TEXT NOT NULL,
		state        TEXT NOT NULL DEFAULT 'draft' CHECK (state IN ('draft', 'published')),
		read_count   BIGINT NOT NULL DEFAULT 0 CHECK (read_count >= 0),
		reading_time DOUBLE PRECISION,
		tags         TEXT[] NOT NULL DEFAULT '{}',
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL,
		CONSTRAINT posts_public_id_key UNIQUE (public_id),
		CONSTRAINT posts_title_key UNIQUE (title)
	)`,
	`CREATE INDEX IF NOT EXISTS posts_state_created_idx ON posts (state, created_at DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS posts_author_idx ON posts (author_id)`,
	`CREATE INDEX IF NOT EXISTS posts_tags_idx ON posts USING GIN (tags)`,
}

// InitSchema идемпотентно создаёт таблицы и индексы.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, q := range schema {
		if _, err := pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}
