package models

import (
	"fmt"
	"strings"
	"time"
)

type PostState string

const (
	PostStateDraft     PostState = "draft"
	PostStatePublished PostState = "published"
)

// ParsePostState принимает только draft|published, пустая строка означает draft.
func ParsePostState(s string) (PostState, error) {
	switch PostState(strings.ToLower(strings.TrimSpace(s))) {
	case "", PostStateDraft:
		return PostStateDraft, nil
	case PostStatePublished:
		return PostStatePublished, nil
	default:
		return "", fmt.Errorf("неизвестное состояние поста %q", s)
	}
}

func (s PostState) Valid() bool {
	return s == PostStateDraft || s == PostStatePublished
}

type Post struct {
	ID          int64     `db:"id"           json:"-"`
	PublicID    string    `db:"public_id"    json:"public_id"`
	AuthorID    string    `db:"author_id"    json:"-"`
	Author      Author    `db:"-"            json:"author"`
	Title       string    `db:"title"        json:"title"`
	Description string    `db:"description"  json:"description"`
	Body        string    `db:"body"         json:"body"`
	State       PostState `db:"state"        json:"state"`
	ReadCount   int64     `db:"read_count"   json:"read_count"`
	ReadingTime *float64  `db:"reading_time" json:"reading_time,omitempty"`
	Tags        []string  `db:"tags"         json:"tags"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}

// swagger:model CreatePostRequest
type CreatePostRequest struct {
	Author      string   `json:"-"`
	Title       string   `json:"title"       example:"Пагинация в Postgres"`
	Description string   `json:"description" example:"Короткое описание для ленты"`
	Body        string   `json:"body"        example:"<p>Контент</p>"`
	State       string   `json:"state,omitempty" example:"draft"`
	Tags        []string `json:"tags"        example:"go,postgres"`
}

// UpdatePostRequest: частичное обновление: nil-поля не трогаем.
//
// swagger:model UpdatePostRequest
type UpdatePostRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Body        *string    `json:"body,omitempty"`
	State       *PostState `json:"state,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	ReadingTime *float64   `json:"reading_time,omitempty"`
}

// PostPatch: то, что реально уходит в хранилище при обновлении.
type PostPatch struct {
	UpdatePostRequest
	// CreatedAt применяется, только если в хранилище пост ещё черновик.
	CreatedAt *time.Time
}

func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Body == nil && p.State == nil &&
		p.Tags == nil && p.ReadingTime == nil && p.CreatedAt == nil
}

type SearchParams struct {
	Author string   `json:"author,omitempty"`
	Title  string   `json:"title,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

type SortKey string

const (
	SortTimestamp   SortKey = "timestamp"
	SortReadCount   SortKey = "read_count"
	SortReadingTime SortKey = "reading_time"
)

type ListRequest struct {
	Page    int
	PerPage int
	Search  SearchParams
	Sort    SortKey
	// Order: desc (по умолчанию) | asc
	Order string
}
