package repository

import (
	"fmt"
	"math"
	"strings"

	"blogfeed/internal/models"
)

const DefaultPerPage = 20

// PostFilter: предикат выборки постов. Пустые поля не участвуют в фильтре.
type PostFilter struct {
	State         *models.PostState
	AuthorID      string
	TitleContains string // ILIKE по подстроке, без учёта регистра
	TitleEquals   string // точное совпадение
	Tags          []string
}

// PostQuery: фильтр + сортировка + окно пагинации.
type PostQuery struct {
	Filter PostFilter
	SortBy string
	Desc   bool
	Offset int64
	Limit  int
}

var sortColumns = map[models.SortKey]string{
	models.SortTimestamp:   "created_at",
	models.SortReadCount:   "read_count",
	models.SortReadingTime: "reading_time",
}

// SortColumn: колонка для ключа сортировки; неизвестный ключ даёт created_at.
func SortColumn(key models.SortKey) string {
	if col, ok := sortColumns[models.SortKey(strings.ToLower(strings.TrimSpace(string(key))))]; ok {
		return col
	}
	return "created_at"
}

// Offset = (page-1)*perPage, с насыщением вместо переполнения.
func Offset(page, perPage int) int64 {
	if page < 1 || perPage < 1 {
		return 0
	}
	p := int64(page - 1)
	if p > 0 && p > math.MaxInt64/int64(perPage) {
		return math.MaxInt64
	}
	return p * int64(perPage)
}

// BuildListQuery собирает запрос публичной ленты: только опубликованные посты.
func BuildListQuery(req models.ListRequest, defaultPerPage int) PostQuery {
	if defaultPerPage < 1 {
		defaultPerPage = DefaultPerPage
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}

	published := models.PostStatePublished
	return PostQuery{
		Filter: PostFilter{
			State:         &published,
			AuthorID:      strings.TrimSpace(req.Search.Author),
			TitleContains: strings.TrimSpace(req.Search.Title),
			Tags:          cleanTags(req.Search.Tags),
		},
		SortBy: SortColumn(req.Sort),
		Desc:   !strings.EqualFold(strings.TrimSpace(req.Order), "asc"),
		Offset: Offset(page, perPage),
		Limit:  perPage,
	}
}

// BuildSearchQuery: свободный поиск: без фильтра по состоянию, заголовок точный.
func BuildSearchQuery(p models.SearchParams) PostFilter {
	return PostFilter{
		AuthorID:    strings.TrimSpace(p.Author),
		TitleEquals: strings.TrimSpace(p.Title),
		Tags:        cleanTags(p.Tags),
	}
}

// where рендерит WHERE-часть; плейсхолдеры начинаются с $start.
func (f PostFilter) where(start int) (string, []any) {
	var (
		conds []string
		args  []any
	)
	i := start
	add := func(cond string, arg any) {
		conds = append(conds, fmt.Sprintf(cond, i))
		args = append(args, arg)
		i++
	}

	if f.State != nil {
		add("state = $%d", string(*f.State))
	}
	if f.AuthorID != "" {
		add("author_id = $%d", f.AuthorID)
	}
	if f.TitleContains != "" {
		add(`title ILIKE '%%' || $%d || '%%'`, escapeLike(f.TitleContains))
	}
	if f.TitleEquals != "" {
		add("title = $%d", f.TitleEquals)
	}
	if len(f.Tags) > 0 {
		// пересечение массивов
		add("tags && $%d::text[]", f.Tags)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (q PostQuery) orderBy() string {
	col := q.SortBy
	if col == "" {
		col = "created_at"
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	if col == "reading_time" {
		return fmt.Sprintf(" ORDER BY %s %s NULLS LAST, id %s", col, dir, dir)
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func cleanTags(in []string) []string {
	var out []string
	for _, t := range in {
		for _, part := range strings.Split(t, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
