package repository

import (
	"context"
	"errors"
	"time"

	"blogfeed/internal/logger"
	"blogfeed/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// UserDirectory: read-only справочник авторов.
type UserDirectory interface {
	Resolve(ctx context.Context, id string) (models.Author, error)
	ResolveMany(ctx context.Context, ids []string) (map[string]models.Author, error)
}

type UserRepository struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewUserRepository(db *pgxpool.Pool, timeout time.Duration) *UserRepository {
	return &UserRepository{db: db, timeout: timeout}
}

func (r *UserRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *UserRepository) Resolve(ctx context.Context, id string) (models.Author, error) {
	logger.Log.Debug("Получение автора по ID (repo)", zap.String("author_id", id))
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	a := models.Author{ID: id}
	err := r.db.QueryRow(ctx, `SELECT first_name, last_name FROM users WHERE id = $1`, id).
		Scan(&a.FirstName, &a.LastName)
	if err != nil {
		err = mapPgError(err)
		if !errors.Is(err, ErrNotFound) {
			logger.Log.Error("Ошибка получения автора (repo)", zap.String("author_id", id), zap.Error(err))
		}
		return models.Author{}, err
	}
	return a, nil
}

// ResolveMany: одна выборка на всю страницу; отсутствующих авторов в карте нет.
func (r *UserRepository) ResolveMany(ctx context.Context, ids []string) (map[string]models.Author, error) {
	out := make(map[string]models.Author, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		logger.Log.Error("Ошибка получения авторов (repo)", zap.Int("count", len(ids)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName); err != nil {
			logger.Log.Error("Ошибка сканирования автора (repo)", zap.Error(err))
			return nil, err
		}
		out[a.ID] = a
	}
	return out, rows.Err()
}
