package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"blogfeed/internal/logger"
	"blogfeed/internal/models"
)

type PostRepo interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	Find(ctx context.Context, q PostQuery) ([]*models.Post, error)
	FindAll(ctx context.Context, f PostFilter) ([]*models.Post, error)
	Count(ctx context.Context, f PostFilter) (int64, error)
	FindOne(ctx context.Context, publicID string) (*models.Post, error)
	Update(ctx context.Context, publicID string, patch models.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, publicID string) (*models.Post, error)
	IncrementReadCount(ctx context.Context, publicID string) (int64, error)
}

const postColumns = `id, public_id, author_id, title, description, body, state, read_count, reading_time, tags, created_at, updated_at`

// публичный id перегенерируется при коллизии не больше стольких раз
const publicIDAttempts = 3

type postRepo struct {
	db      *pgxpool.Pool
	ids     IDGenerator
	now     func() time.Time
	timeout time.Duration
}

func NewPostRepo(db *pgxpool.Pool, timeout time.Duration) PostRepo {
	return &postRepo{
		db:      db,
		ids:     IDGeneratorFunc(ShortID),
		now:     time.Now,
		timeout: timeout,
	}
}

func (r *postRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *postRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const q = `
		INSERT INTO posts (public_id, author_id, title, description, body, state, reading_time, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text[], $9, $9)
		RETURNING ` + postColumns

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return r.createWithRetry(ctx, func(ctx context.Context, publicID string) (*models.Post, error) {
		// время создания берём на каждую вставку
		createdAt := r.now()
		return scanPost(r.db.QueryRow(ctx, q,
			publicID,
			p.AuthorID,
			p.Title,
			p.Description,
			p.Body,
			string(p.State),
			p.ReadingTime,
			tags,
			createdAt,
		))
	})
}

// createWithRetry вызывает insert со свежим public_id, пока вставка падает на коллизии public_id.
func (r *postRepo) createWithRetry(ctx context.Context, insert func(ctx context.Context, publicID string) (*models.Post, error)) (*models.Post, error) {
	var lastErr error
	for attempt := 1; attempt <= publicIDAttempts; attempt++ {
		publicID := r.ids.NewID()

		out, err := insert(ctx, publicID)
		if err == nil {
			return out, nil
		}
		lastErr = mapPgError(err)
		if !errors.Is(lastErr, ErrDuplicatePublicID) {
			return nil, lastErr
		}
		logger.WithCtx(ctx).Warn("Коллизия public_id, генерируем заново (repo)",
			zap.String("public_id", publicID), zap.Int("attempt", attempt))
	}
	return nil, lastErr
}

func (r *postRepo) Find(ctx context.Context, q PostQuery) ([]*models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	where, args := q.Filter.where(1)
	i := len(args) + 1
	sql := "SELECT " + postColumns + " FROM posts" + where + q.orderBy() +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, q.Limit, q.Offset)

	return r.query(ctx, sql, args...)
}

func (r *postRepo) FindAll(ctx context.Context, f PostFilter) ([]*models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	where, args := f.where(1)
	sql := "SELECT " + postColumns + " FROM posts" + where + " ORDER BY created_at DESC, id DESC"
	return r.query(ctx, sql, args...)
}

func (r *postRepo) Count(ctx context.Context, f PostFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	where, args := f.where(1)
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts"+where, args...).Scan(&total); err != nil {
		return 0, mapPgError(err)
	}
	return total, nil
}

func (r *postRepo) FindOne(ctx context.Context, publicID string) (*models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	p, err := scanPost(r.db.QueryRow(ctx, "SELECT "+postColumns+" FROM posts WHERE public_id = $1", publicID))
	if err != nil {
		return nil, mapPgError(err)
	}
	return p, nil
}

// Update сливает заданные поля в запись и возвращает её новое состояние.
func (r *postRepo) Update(ctx context.Context, publicID string, patch models.PostPatch) (*models.Post, error) {
	if patch.Empty() {
		return r.FindOne(ctx, publicID)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args := buildUpdate(publicID, patch, r.now())
	p, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapPgError(err)
	}
	return p, nil
}

// buildUpdate собирает UPDATE только по заданным полям патча.
func buildUpdate(publicID string, patch models.PostPatch, now time.Time) (string, []any) {
	var (
		sets []string
		args []any
	)
	set := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}
	if patch.Title != nil {
		set("title = $%d", *patch.Title)
	}
	if patch.Description != nil {
		set("description = $%d", *patch.Description)
	}
	if patch.Body != nil {
		set("body = $%d", *patch.Body)
	}
	if patch.State != nil {
		set("state = $%d", string(*patch.State))
	}
	if patch.Tags != nil {
		tags := *patch.Tags
		if tags == nil {
			tags = []string{}
		}
		set("tags = $%d::text[]", tags)
	}
	if patch.ReadingTime != nil {
		set("reading_time = $%d", *patch.ReadingTime)
	}
	if patch.CreatedAt != nil {
		// сброс только при фактическом переходе из черновика, в том же UPDATE
		set("created_at = CASE WHEN state = 'draft' THEN $%d::timestamptz ELSE created_at END", *patch.CreatedAt)
	}
	set("updated_at = $%d", now)

	args = append(args, publicID)
	sql := fmt.Sprintf("UPDATE posts SET %s WHERE public_id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), postColumns)

	return sql, args
}

func (r *postRepo) Delete(ctx context.Context, publicID string) (*models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	p, err := scanPost(r.db.QueryRow(ctx, "DELETE FROM posts WHERE public_id = $1 RETURNING "+postColumns, publicID))
	if err != nil {
		return nil, mapPgError(err)
	}
	return p, nil
}

// IncrementReadCount: атомарный инкремент на стороне БД, без read-modify-write.
func (r *postRepo) IncrementReadCount(ctx context.Context, publicID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const q = `UPDATE posts SET read_count = read_count + 1 WHERE public_id = $1 RETURNING read_count`
	var n int64
	if err := r.db.QueryRow(ctx, q, publicID).Scan(&n); err != nil {
		return 0, mapPgError(err)
	}
	return n, nil
}

func (r *postRepo) query(ctx context.Context, sql string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	list := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var (
		p     models.Post
		state string
	)
	if err := row.Scan(
		&p.ID, &p.PublicID, &p.AuthorID, &p.Title, &p.Description, &p.Body,
		&state, &p.ReadCount, &p.ReadingTime, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.State = models.PostState(state)
	p.Author = models.Author{ID: p.AuthorID}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}
