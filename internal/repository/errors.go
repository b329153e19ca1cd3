package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("не найдено")
	ErrDuplicateTitle    = errors.New("пост с таким заголовком уже существует")
	ErrDuplicatePublicID = errors.New("коллизия public_id")
)

const uniqueViolation = "23505"

// mapPgError переводит ошибки драйвера в ошибки репозитория.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "posts_title_key":
			return errors.Join(ErrDuplicateTitle, err)
		case "posts_public_id_key":
			return errors.Join(ErrDuplicatePublicID, err)
		}
	}
	return err
}
