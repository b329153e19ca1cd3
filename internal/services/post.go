package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"blogfeed/internal/logger"
	"blogfeed/internal/metrics"
	"blogfeed/internal/models"
	"blogfeed/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type PostService interface {
	GetByAuthor(ctx context.Context, authorID string) models.Result
	GetByAuthorAndState(ctx context.Context, authorID, state string) models.Result
	GetByPublicID(ctx context.Context, publicID string) models.Result
	Create(ctx context.Context, req models.CreatePostRequest) models.Result
	Update(ctx context.Context, publicID string, req models.UpdatePostRequest) models.Result
	Publish(ctx context.Context, publicID string) models.Result
	Delete(ctx context.Context, publicID string) models.Result
	IncrementReadCount(ctx context.Context, publicID string) models.Result
	Search(ctx context.Context, params models.SearchParams) ([]*models.Post, error)
}

// transitions: разрешённые переходы состояния поста. Разрешены все пары draft/published,
// включая снятие с публикации и повторную публикацию.
var transitions = map[models.PostState]map[models.PostState]bool{
	models.PostStateDraft:     {models.PostStateDraft: true, models.PostStatePublished: true},
	models.PostStatePublished: {models.PostStatePublished: true, models.PostStateDraft: true},
}

type postService struct {
	repo   repository.PostRepo
	users  repository.UserDirectory
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewPostService(repo repository.PostRepo, users repository.UserDirectory) PostService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &postService{repo: repo, users: users, policy: p, now: time.Now}
}

func (s *postService) GetByAuthor(ctx context.Context, authorID string) models.Result {
	log := logger.WithCtx(ctx)
	log.Debug("Получение постов автора", zap.String("author_id", authorID))

	if strings.TrimSpace(authorID) == "" {
		return invalid("Author is required", nil)
	}

	blogs, err := s.repo.FindAll(ctx, repository.PostFilter{AuthorID: authorID})
	if err == nil {
		err = joinAuthors(ctx, s.users, blogs)
	}
	if err != nil {
		log.Error("Ошибка получения постов автора", zap.String("author_id", authorID), zap.Error(err))
		return storeFailure("get_by_author", "Error fetching blogs", err)
	}

	log.Debug("Посты автора получены", zap.Int("count", len(blogs)))
	return success(http.StatusOK, "Blogs fetched successfully", models.BlogsData{Blogs: blogs})
}

// GetByAuthorAndState: черновики или опубликованные посты автора.
func (s *postService) GetByAuthorAndState(ctx context.Context, authorID, state string) models.Result {
	log := logger.WithCtx(ctx)

	st, err := models.ParsePostState(state)
	if err != nil {
		log.Warn("Валидация не пройдена: состояние", zap.String("state", state), zap.Error(err))
		return invalid("Invalid state", err)
	}
	if strings.TrimSpace(authorID) == "" {
		return invalid("Author is required", nil)
	}

	blogs, err := s.repo.FindAll(ctx, repository.PostFilter{AuthorID: authorID, State: &st})
	if err == nil {
		err = joinAuthors(ctx, s.users, blogs)
	}
	if err != nil {
		log.Error("Ошибка получения постов автора по состоянию",
			zap.String("author_id", authorID), zap.String("state", string(st)), zap.Error(err))
		return storeFailure("get_by_author_state", "Error fetching blogs", err)
	}

	msg := "Draft Post fetched successfully"
	if st == models.PostStatePublished {
		msg = "Published Post fetched successfully"
	}
	return success(http.StatusOK, msg, models.DraftsData{Blog: blogs})
}

func (s *postService) GetByPublicID(ctx context.Context, publicID string) models.Result {
	log := logger.WithCtx(ctx)
	log.Debug("Получение поста по public_id", zap.String("public_id", publicID))

	p, err := s.repo.FindOne(ctx, publicID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Пост не найден", zap.String("public_id", publicID))
		return notFound("Blog not found")
	}
	if err == nil {
		err = joinAuthors(ctx, s.users, []*models.Post{p})
	}
	if err != nil {
		log.Error("Ошибка получения поста", zap.String("public_id", publicID), zap.Error(err))
		return storeFailure("get_by_public_id", "Error fetching blog", err)
	}

	return success(http.StatusOK, "Blog fetched successfully", models.BlogData{Blog: p})
}

func (s *postService) Create(ctx context.Context, req models.CreatePostRequest) models.Result {
	log := logger.WithCtx(ctx)
	title := strings.TrimSpace(req.Title)
	log.Info("Создание поста",
		zap.String("author_id", req.Author),
		zap.String("title", title),
		zap.String("state", req.State),
		zap.Int("tags_count", len(req.Tags)),
	)

	state, err := models.ParsePostState(req.State)
	if err != nil {
		log.Warn("Валидация не пройдена: состояние", zap.Error(err))
		return invalid("Invalid state", err)
	}
	body := s.policy.Sanitize(req.Body)
	description := strings.TrimSpace(s.policy.Sanitize(req.Description))
	if err := requireFields(req.Author, title, description, body); err != nil {
		log.Warn("Валидация не пройдена", zap.Error(err))
		return invalid("Failed to create blog", err)
	}

	author, err := s.users.Resolve(ctx, req.Author)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Автор не найден", zap.String("author_id", req.Author))
		return invalid("Author not found", err)
	}
	if err != nil {
		log.Error("Ошибка проверки автора", zap.String("author_id", req.Author), zap.Error(err))
		return storeFailure("create", "Failed to create blog", err)
	}

	created, err := s.repo.Create(ctx, &models.Post{
		AuthorID:    req.Author,
		Title:       title,
		Description: description,
		Body:        body,
		State:       state,
		Tags:        normalizeTags(req.Tags),
	})
	if err != nil {
		log.Error("Ошибка создания поста (repo)", zap.Error(err))
		return storeFailure("create", "Failed to create blog", err)
	}
	created.Author = author

	log.Info("Пост создан", zap.String("public_id", created.PublicID), zap.String("state", string(created.State)))
	return success(http.StatusCreated, "Blog created successfully", models.NewBlogData{NewBlog: created})
}

func (s *postService) Update(ctx context.Context, publicID string, req models.UpdatePostRequest) models.Result {
	log := logger.WithCtx(ctx)
	log.Info("Обновление поста", zap.String("public_id", publicID))

	patch, err := s.buildPatch(req)
	if err != nil {
		log.Warn("Валидация не пройдена", zap.String("public_id", publicID), zap.Error(err))
		return invalid("Invalid update", err)
	}

	current, err := s.repo.FindOne(ctx, publicID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Пост для обновления не найден", zap.String("public_id", publicID))
		return notFound("Blog not found")
	}
	if err != nil {
		log.Error("Ошибка получения поста для обновления (repo)", zap.String("public_id", publicID), zap.Error(err))
		return storeFailure("update", "Error updating blog", err)
	}

	if patch.State != nil {
		next := *patch.State
		if !transitions[current.State][next] {
			err := fmt.Errorf("переход %s -> %s запрещён", current.State, next)
			log.Warn("Недопустимый переход состояния", zap.String("public_id", publicID), zap.Error(err))
			return invalid("Invalid state transition", err)
		}
		// публикация черновика поднимает пост наверх ленты по timestamp
		if current.State == models.PostStateDraft && next == models.PostStatePublished {
			now := s.now()
			patch.CreatedAt = &now
		}
	}

	updated, err := s.repo.Update(ctx, publicID, patch)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Пост удалён во время обновления", zap.String("public_id", publicID))
		return notFound("Blog not found")
	}
	if err != nil {
		log.Error("Ошибка обновления поста (repo)", zap.String("public_id", publicID), zap.Error(err))
		return storeFailure("update", "Error updating blog", err)
	}
	joinAuthorBestEffort(ctx, s.users, updated)

	log.Info("Пост обновлён", zap.String("public_id", publicID), zap.String("state", string(updated.State)))
	return success(http.StatusOK, "Blog updated successfully", models.BlogData{Blog: updated})
}

func (s *postService) Publish(ctx context.Context, publicID string) models.Result {
	published := models.PostStatePublished
	return s.Update(ctx, publicID, models.UpdatePostRequest{State: &published})
}

func (s *postService) Delete(ctx context.Context, publicID string) models.Result {
	log := logger.WithCtx(ctx)
	log.Info("Удаление поста", zap.String("public_id", publicID))

	deleted, err := s.repo.Delete(ctx, publicID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn("Пост для удаления не найден", zap.String("public_id", publicID))
		return notFound("Blog not found")
	}
	if err != nil {
		log.Error("Ошибка удаления поста (repo)", zap.String("public_id", publicID), zap.Error(err))
		return storeFailure("delete", "Error deleting blog", err)
	}
	joinAuthorBestEffort(ctx, s.users, deleted)

	log.Info("Пост удалён", zap.String("public_id", publicID))
	return success(http.StatusOK, "Blog deleted successfully", models.BlogData{Blog: deleted})
}

// IncrementReadCount: атомарный +1 в хранилище, гонки потерянного обновления нет.
func (s *postService) IncrementReadCount(ctx context.Context, publicID string) models.Result {
	log := logger.WithCtx(ctx)

	n, err := s.repo.IncrementReadCount(ctx, publicID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Debug("Прочтение несуществующего поста", zap.String("public_id", publicID))
		return notFound("Blog post not found")
	}
	if err != nil {
		log.Error("Ошибка инкремента прочтений (repo)", zap.String("public_id", publicID), zap.Error(err))
		return storeFailure("read_count", "Internal server error", err)
	}

	metrics.BlogReads.Inc()
	return success(http.StatusOK, "Read count updated", models.CounterData{ReadCount: n})
}

// Search: свободный поиск по автору, точному заголовку и тегам, в любом состоянии.
// В отличие от ленты, конверта нет и авторы не подтягиваются.
func (s *postService) Search(ctx context.Context, params models.SearchParams) ([]*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Поиск постов",
		zap.String("author", params.Author),
		zap.String("title", params.Title),
		zap.Strings("tags", params.Tags),
	)

	list, err := s.repo.FindAll(ctx, repository.BuildSearchQuery(params))
	if err != nil {
		log.Error("Ошибка поиска постов (repo)", zap.Error(err))
		return nil, fmt.Errorf("поиск постов: %w", err)
	}

	log.Debug("Поиск завершён", zap.Int("count", len(list)))
	return list, nil
}

func (s *postService) buildPatch(req models.UpdatePostRequest) (models.PostPatch, error) {
	patch := models.PostPatch{UpdatePostRequest: req}

	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" {
			return patch, errors.New("заголовок не может быть пустым")
		}
		patch.Title = &t
	}
	if req.Description != nil {
		d := strings.TrimSpace(s.policy.Sanitize(*req.Description))
		if d == "" {
			return patch, errors.New("описание не может быть пустым")
		}
		patch.Description = &d
	}
	if req.Body != nil {
		b := s.policy.Sanitize(*req.Body)
		if strings.TrimSpace(b) == "" {
			return patch, errors.New("контент не может быть пустым")
		}
		patch.Body = &b
	}
	if req.State != nil && !req.State.Valid() {
		return patch, fmt.Errorf("неизвестное состояние поста %q", *req.State)
	}
	if req.Tags != nil {
		tags := normalizeTags(*req.Tags)
		patch.Tags = &tags
	}
	if req.ReadingTime != nil && *req.ReadingTime < 0 {
		return patch, errors.New("время чтения не может быть отрицательным")
	}
	return patch, nil
}

func requireFields(author, title, description, body string) error {
	var missing []string
	if strings.TrimSpace(author) == "" {
		missing = append(missing, "author")
	}
	if title == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(body) == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return fmt.Errorf("обязательные поля не заполнены: %s", strings.Join(missing, ", "))
	}
	return nil
}
