package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"blogfeed/internal/logger"
	"blogfeed/internal/models"
	"blogfeed/internal/reqctx"
	"blogfeed/internal/services"
	helpers "blogfeed/internal/utils/helpres"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type BlogHandler struct {
	listing    services.ListingService
	posts      services.PostService
	maxPerPage int
}

func NewBlogHandler(listing services.ListingService, posts services.PostService, maxPerPage int) *BlogHandler {
	return &BlogHandler{listing: listing, posts: posts, maxPerPage: maxPerPage}
}

// List
// @Summary      Лента опубликованных постов
// @Description  Пагинация, фильтры по автору, подстроке заголовка и тегам, сортировка
// @Tags         blogs
// @Produce      json
// @Param        page      query  int     false  "Номер страницы (с 1)"
// @Param        per_page  query  int     false  "Размер страницы"
// @Param        author    query  string  false  "ID автора"
// @Param        title     query  string  false  "Подстрока заголовка"
// @Param        tags      query  []string false "Теги (повтор или через запятую)"
// @Param        sort      query  string  false  "timestamp | read_count | reading_time"
// @Param        order     query  string  false  "desc | asc"
// @Success      200  {object}  models.Result{data=models.ListingData}
// @Failure      500  {object}  models.Result
// @Router       /api/blogs [get]
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	perPage := atoiOr(firstNonEmpty(q.Get("per_page"), q.Get("perPage")), 0)
	if h.maxPerPage > 0 && perPage > h.maxPerPage {
		perPage = h.maxPerPage
	}

	req := models.ListRequest{
		Page:    atoiOr(q.Get("page"), 1),
		PerPage: perPage,
		Search:  searchParams(r),
		Sort:    models.SortKey(q.Get("sort")),
		Order:   q.Get("order"),
	}

	helpers.Result(w, h.listing.ListPublished(r.Context(), req))
}

// Search
// @Summary      Поиск постов
// @Description  Точное совпадение заголовка, любые состояния, без обёртки и без данных автора
// @Tags         blogs
// @Produce      json
// @Param        author  query  string    false  "ID автора"
// @Param        title   query  string    false  "Заголовок целиком"
// @Param        tags    query  []string  false  "Теги"
// @Success      200  {array}   models.Post
// @Failure      500  {object}  models.Result
// @Router       /api/blogs/search [get]
func (h *BlogHandler) Search(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.Search(r.Context(), searchParams(r))
	if err != nil {
		logger.WithCtx(r.Context()).Error("ошибка поиска постов", zap.Error(err))
		helpers.Result(w, models.Result{
			Code:    http.StatusInternalServerError,
			Message: "Error fetching blogs",
			Error:   err.Error(),
		})
		return
	}
	helpers.JSON(w, http.StatusOK, posts)
}

// Get
// @Summary      Пост по public_id
// @Description  Черновик доступен только автору (с токеном), остальным 404
// @Tags         blogs
// @Produce      json
// @Param        id  path  string  true  "public_id"
// @Success      200  {object}  models.Result{data=models.BlogData}
// @Failure      404  {object}  models.Result
// @Router       /api/blogs/{id} [get]
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	res := h.posts.GetByPublicID(r.Context(), mux.Vars(r)["id"])
	if res.Success && !visible(r, res) {
		helpers.Error(w, http.StatusNotFound, "Blog not found")
		return
	}
	helpers.Result(w, res)
}

// Read
// @Summary      Засчитать прочтение
// @Description  Прочтения черновика засчитываются только автору
// @Tags         blogs
// @Produce      json
// @Param        id  path  string  true  "public_id"
// @Success      200  {object}  models.Result{data=models.CounterData}
// @Failure      404  {object}  models.Result
// @Router       /api/blogs/{id}/read [post]
func (h *BlogHandler) Read(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	res := h.posts.GetByPublicID(r.Context(), id)
	switch {
	case res.Kind == models.KindNotFound, res.Success && !visible(r, res):
		helpers.Error(w, http.StatusNotFound, "Blog post not found")
		return
	case !res.Success:
		helpers.Result(w, res)
		return
	}
	helpers.Result(w, h.posts.IncrementReadCount(r.Context(), id))
}

// Mine
// @Summary      Посты текущего автора
// @Description  Без state все посты, с state=draft|published только посты в этом состоянии
// @Tags         blogs
// @Produce      json
// @Param        state  query  string  false  "draft | published"
// @Success      200  {object}  models.Result
// @Failure      401  {object}  models.Result
// @Security     BearerAuth
// @Router       /api/me/blogs [get]
func (h *BlogHandler) Mine(w http.ResponseWriter, r *http.Request) {
	authorID, _ := reqctx.GetUserID(r.Context())

	state := r.URL.Query().Get("state")
	if state == "" {
		helpers.Result(w, h.posts.GetByAuthor(r.Context(), authorID))
		return
	}
	helpers.Result(w, h.posts.GetByAuthorAndState(r.Context(), authorID, state))
}

// Create
// @Summary      Создать пост
// @Description  Автор берётся из токена. По умолчанию пост создаётся черновиком.
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        body  body  models.CreatePostRequest  true  "Данные поста"
// @Success      201  {object}  models.Result{data=models.NewBlogData}
// @Failure      400  {object}  models.Result
// @Failure      500  {object}  models.Result
// @Security     BearerAuth
// @Router       /api/blogs [post]
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("ошибка декодирования JSON при создании поста", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Author, _ = reqctx.GetUserID(r.Context())

	helpers.Result(w, h.posts.Create(r.Context(), req))
}

// Update
// @Summary      Обновить пост
// @Description  Частичное обновление; менять может только автор
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "public_id"
// @Param        body  body  models.UpdatePostRequest  true  "Изменяемые поля"
// @Success      200  {object}  models.Result{data=models.BlogData}
// @Failure      400  {object}  models.Result
// @Failure      403  {object}  models.Result
// @Failure      404  {object}  models.Result
// @Security     BearerAuth
// @Router       /api/blogs/{id} [patch]
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WithCtx(r.Context()).Warn("ошибка декодирования JSON при обновлении поста", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	helpers.Result(w, h.posts.Update(r.Context(), id, req))
}

// Publish
// @Summary      Опубликовать пост
// @Tags         blogs
// @Produce      json
// @Param        id  path  string  true  "public_id"
// @Success      200  {object}  models.Result{data=models.BlogData}
// @Failure      403  {object}  models.Result
// @Failure      404  {object}  models.Result
// @Security     BearerAuth
// @Router       /api/blogs/{id}/publish [patch]
func (h *BlogHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}
	helpers.Result(w, h.posts.Publish(r.Context(), id))
}

// Delete
// @Summary      Удалить пост
// @Tags         blogs
// @Produce      json
// @Param        id  path  string  true  "public_id"
// @Success      200  {object}  models.Result{data=models.BlogData}
// @Failure      403  {object}  models.Result
// @Failure      404  {object}  models.Result
// @Security     BearerAuth
// @Router       /api/blogs/{id} [delete]
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}
	helpers.Result(w, h.posts.Delete(r.Context(), id))
}

// visible: черновик виден только автору.
func visible(r *http.Request, res models.Result) bool {
	data, ok := res.Data.(models.BlogData)
	if !ok || data.Blog == nil {
		return false
	}
	if data.Blog.State != models.PostStateDraft {
		return true
	}
	userID, ok := reqctx.GetUserID(r.Context())
	return ok && userID == data.Blog.AuthorID
}

// authorize пускает к изменению поста только его автора.
func (h *BlogHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	userID, _ := reqctx.GetUserID(r.Context())

	res := h.posts.GetByPublicID(r.Context(), id)
	if !res.Success {
		helpers.Result(w, res)
		return "", false
	}

	data, ok := res.Data.(models.BlogData)
	if !ok || data.Blog == nil || data.Blog.AuthorID != userID {
		logger.WithCtx(r.Context()).Warn("попытка изменить чужой пост", zap.String("public_id", id))
		helpers.Error(w, http.StatusForbidden, "Forbidden")
		return "", false
	}
	return id, true
}

func searchParams(r *http.Request) models.SearchParams {
	q := r.URL.Query()
	var tags []string
	for _, raw := range q["tags"] {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return models.SearchParams{
		Author: strings.TrimSpace(q.Get("author")),
		Title:  q.Get("title"),
		Tags:   tags,
	}
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
