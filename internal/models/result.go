package models

type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindNotFound     ErrorKind = "not_found"
	KindStoreFailure ErrorKind = "store_failure"
	KindValidation   ErrorKind = "validation"
)

// Result: конверт ответа сервисов. Имена полей JSON фиксированы.
type Result struct {
	Code    int       `json:"code"`
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
	Kind    ErrorKind `json:"-"`
}

type ListingData struct {
	Blogs      []*Post `json:"blogs"`
	TotalCount int64   `json:"totalCount"`
}

type BlogsData struct {
	Blogs []*Post `json:"blogs"`
}

// DraftsData: выборка по автору и состоянию, ключ "blog" исторический.
type DraftsData struct {
	Blog []*Post `json:"blog"`
}

type BlogData struct {
	Blog *Post `json:"blog"`
}

type NewBlogData struct {
	NewBlog *Post `json:"newBlog"`
}

type CounterData struct {
	ReadCount int64 `json:"read_count"`
}
