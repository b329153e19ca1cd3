package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"blogfeed/internal/logger"
	"blogfeed/internal/metrics"
	"blogfeed/internal/models"
	"blogfeed/internal/repository"

	"go.uber.org/zap"
)

func success(code int, message string, data any) models.Result {
	return models.Result{Code: code, Success: true, Message: message, Data: data}
}

func notFound(message string) models.Result {
	return models.Result{Code: http.StatusNotFound, Message: message, Kind: models.KindNotFound}
}

func invalid(message string, err error) models.Result {
	res := models.Result{Code: http.StatusBadRequest, Message: message, Kind: models.KindValidation}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// storeFailure: 500 с сырой ошибкой. Дубль заголовка остаётся 500 на проводе,
// но помечается KindValidation, чтобы вызывающий код мог его отличить.
func storeFailure(op, message string, err error) models.Result {
	metrics.StoreErrors.WithLabelValues(op).Inc()
	kind := models.KindStoreFailure
	if errors.Is(err, repository.ErrDuplicateTitle) {
		kind = models.KindValidation
	}
	res := models.Result{Code: http.StatusInternalServerError, Message: message, Kind: kind}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// joinAuthors подставляет имена авторов одной выборкой из справочника.
// Автор, которого нет в справочнике, остаётся только с id.
func joinAuthors(ctx context.Context, dir repository.UserDirectory, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(posts))
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; ok {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		ids = append(ids, p.AuthorID)
	}

	authors, err := dir.ResolveMany(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if a, ok := authors[p.AuthorID]; ok {
			p.Author = a
		} else {
			p.Author = models.Author{ID: p.AuthorID}
		}
	}
	return nil
}

// joinAuthorBestEffort: для ответов на мутации: запись уже сохранена, имя автора вторично.
func joinAuthorBestEffort(ctx context.Context, dir repository.UserDirectory, p *models.Post) {
	if err := joinAuthors(ctx, dir, []*models.Post{p}); err != nil {
		logger.WithCtx(ctx).Warn("Не удалось подтянуть автора", zap.String("public_id", p.PublicID), zap.Error(err))
	}
}

func normalizeTags(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
