package services

import (
	"context"
	"net/http"

	"blogfeed/internal/logger"
	"blogfeed/internal/models"
	"blogfeed/internal/repository"

	"go.uber.org/zap"
)

type ListingService interface {
	ListPublished(ctx context.Context, req models.ListRequest) models.Result
}

type listingService struct {
	repo           repository.PostRepo
	users          repository.UserDirectory
	defaultPerPage int
}

func NewListingService(repo repository.PostRepo, users repository.UserDirectory, defaultPerPage int) ListingService {
	return &listingService{repo: repo, users: users, defaultPerPage: defaultPerPage}
}

// ListPublished: страница опубликованных постов и общее число подходящих под фильтр.
func (s *listingService) ListPublished(ctx context.Context, req models.ListRequest) models.Result {
	log := logger.WithCtx(ctx)
	q := repository.BuildListQuery(req, s.defaultPerPage)
	log.Debug("Получение ленты постов",
		zap.Int64("offset", q.Offset),
		zap.Int("limit", q.Limit),
		zap.String("sort", q.SortBy),
		zap.Bool("desc", q.Desc),
		zap.String("author", q.Filter.AuthorID),
		zap.String("title", q.Filter.TitleContains),
		zap.Strings("tags", q.Filter.Tags),
	)

	blogs, err := s.repo.Find(ctx, q)
	if err != nil {
		log.Error("Ошибка получения ленты (repo)", zap.Error(err))
		return storeFailure("list", "Internal server error", err)
	}

	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		log.Error("Ошибка подсчёта постов ленты (repo)", zap.Error(err))
		return storeFailure("list", "Internal server error", err)
	}

	if err := joinAuthors(ctx, s.users, blogs); err != nil {
		log.Error("Ошибка получения авторов ленты", zap.Error(err))
		return storeFailure("list", "Internal server error", err)
	}

	// счётчик и выборка идут разными запросами; total не меньше длины страницы
	if total < int64(len(blogs)) {
		total = int64(len(blogs))
	}

	log.Debug("Лента получена", zap.Int("count", len(blogs)), zap.Int64("total", total))
	return success(http.StatusOK, "Blogs fetched successfully", models.ListingData{
		Blogs:      blogs,
		TotalCount: total,
	})
}
