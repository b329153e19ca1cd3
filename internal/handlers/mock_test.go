package handlers

import (
	"context"
	"net/http"

	"blogfeed/internal/models"
)

type fakeListing struct {
	got models.ListRequest
	res models.Result
}

func (f *fakeListing) ListPublished(_ context.Context, req models.ListRequest) models.Result {
	f.got = req
	return f.res
}

// fakePosts хранит посты по public_id и записывает аргументы вызовов.
type fakePosts struct {
	posts map[string]*models.Post

	searched  models.SearchParams
	searchErr error
	created   models.CreatePostRequest
	updated   models.UpdatePostRequest
	mineState string
	calls     []string
}

func newFakePosts(posts ...*models.Post) *fakePosts {
	f := &fakePosts{posts: map[string]*models.Post{}}
	for _, p := range posts {
		f.posts[p.PublicID] = p
	}
	return f
}

func (f *fakePosts) GetByAuthor(_ context.Context, authorID string) models.Result {
	f.calls = append(f.calls, "by_author:"+authorID)
	return models.Result{Code: http.StatusOK, Success: true, Message: "Blogs fetched successfully", Data: models.BlogsData{Blogs: []*models.Post{}}}
}

func (f *fakePosts) GetByAuthorAndState(_ context.Context, authorID, state string) models.Result {
	f.calls = append(f.calls, "by_author_state:"+authorID)
	f.mineState = state
	return models.Result{Code: http.StatusOK, Success: true, Message: "Draft Post fetched successfully", Data: models.DraftsData{Blog: []*models.Post{}}}
}

func (f *fakePosts) GetByPublicID(_ context.Context, publicID string) models.Result {
	p, ok := f.posts[publicID]
	if !ok {
		return models.Result{Code: http.StatusNotFound, Message: "Blog not found", Kind: models.KindNotFound}
	}
	return models.Result{Code: http.StatusOK, Success: true, Message: "Blog fetched successfully", Data: models.BlogData{Blog: p}}
}

func (f *fakePosts) Create(_ context.Context, req models.CreatePostRequest) models.Result {
	f.created = req
	p := &models.Post{PublicID: "new", AuthorID: req.Author, Author: models.Author{ID: req.Author}, Title: req.Title, State: models.PostStateDraft}
	return models.Result{Code: http.StatusCreated, Success: true, Message: "Blog created successfully", Data: models.NewBlogData{NewBlog: p}}
}

func (f *fakePosts) Update(_ context.Context, publicID string, req models.UpdatePostRequest) models.Result {
	f.calls = append(f.calls, "update:"+publicID)
	f.updated = req
	return models.Result{Code: http.StatusOK, Success: true, Message: "Blog updated successfully", Data: models.BlogData{Blog: f.posts[publicID]}}
}

func (f *fakePosts) Publish(_ context.Context, publicID string) models.Result {
	f.calls = append(f.calls, "publish:"+publicID)
	return models.Result{Code: http.StatusOK, Success: true, Message: "Blog updated successfully", Data: models.BlogData{Blog: f.posts[publicID]}}
}

func (f *fakePosts) Delete(_ context.Context, publicID string) models.Result {
	f.calls = append(f.calls, "delete:"+publicID)
	p := f.posts[publicID]
	delete(f.posts, publicID)
	return models.Result{Code: http.StatusOK, Success: true, Message: "Blog deleted successfully", Data: models.BlogData{Blog: p}}
}

func (f *fakePosts) IncrementReadCount(_ context.Context, publicID string) models.Result {
	p, ok := f.posts[publicID]
	if !ok {
		return models.Result{Code: http.StatusNotFound, Message: "Blog post not found", Kind: models.KindNotFound}
	}
	p.ReadCount++
	return models.Result{Code: http.StatusOK, Success: true, Message: "Read count updated", Data: models.CounterData{ReadCount: p.ReadCount}}
}

func (f *fakePosts) Search(_ context.Context, params models.SearchParams) ([]*models.Post, error) {
	f.searched = params
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	out := []*models.Post{}
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}
