package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"blogfeed/internal/models"
	"blogfeed/internal/repository"
)

// memoryPostRepo: in-memory хранилище с той же семантикой фильтров, что и SQL в репозитории.
type memoryPostRepo struct {
	mu     sync.Mutex
	posts  []*models.Post
	nextID int64
	clock  time.Time
	err    error // если задана, любая операция падает
}

func newMemoryPostRepo() *memoryPostRepo {
	return &memoryPostRepo{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memoryPostRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Tags = append([]string{}, p.Tags...)
	return &c
}

func (m *memoryPostRepo) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, existing := range m.posts {
		if existing.Title == p.Title {
			return nil, errors.Join(repository.ErrDuplicateTitle, errors.New(`duplicate key value violates unique constraint "posts_title_key"`))
		}
	}
	m.nextID++
	c := clonePost(p)
	c.ID = m.nextID
	c.PublicID = fmt.Sprintf("pub-%d", m.nextID)
	c.CreatedAt = m.tick()
	c.UpdatedAt = c.CreatedAt
	c.Author = models.Author{ID: c.AuthorID}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	m.posts = append(m.posts, c)
	return clonePost(c), nil
}

func matches(f repository.PostFilter, p *models.Post) bool {
	if f.State != nil && p.State != *f.State {
		return false
	}
	if f.AuthorID != "" && p.AuthorID != f.AuthorID {
		return false
	}
	if f.TitleContains != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.TitleContains)) {
		return false
	}
	if f.TitleEquals != "" && p.Title != f.TitleEquals {
		return false
	}
	if len(f.Tags) > 0 {
		hit := false
		for _, want := range f.Tags {
			for _, have := range p.Tags {
				if want == have {
					hit = true
				}
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func (m *memoryPostRepo) filter(f repository.PostFilter) []*models.Post {
	var out []*models.Post
	for _, p := range m.posts {
		if matches(f, p) {
			out = append(out, clonePost(p))
		}
	}
	return out
}

func (m *memoryPostRepo) Find(_ context.Context, q repository.PostQuery) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	list := m.filter(q.Filter)
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if q.SortBy == "reading_time" && (a.ReadingTime == nil) != (b.ReadingTime == nil) {
			// NULLS LAST в обоих направлениях
			return b.ReadingTime == nil
		}
		var less bool
		switch q.SortBy {
		case "read_count":
			less = a.ReadCount < b.ReadCount || (a.ReadCount == b.ReadCount && a.ID < b.ID)
		case "reading_time":
			if a.ReadingTime == nil {
				less = a.ID < b.ID
			} else {
				less = *a.ReadingTime < *b.ReadingTime || (*a.ReadingTime == *b.ReadingTime && a.ID < b.ID)
			}
		default:
			less = a.CreatedAt.Before(b.CreatedAt) || (a.CreatedAt.Equal(b.CreatedAt) && a.ID < b.ID)
		}
		if q.Desc {
			return !less
		}
		return less
	})

	out := []*models.Post{}
	if q.Offset >= int64(len(list)) {
		return out, nil
	}
	end := q.Offset + int64(q.Limit)
	if end > int64(len(list)) {
		end = int64(len(list))
	}
	return append(out, list[q.Offset:end]...), nil
}

func (m *memoryPostRepo) FindAll(_ context.Context, f repository.PostFilter) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := m.filter(f)
	if out == nil {
		out = []*models.Post{}
	}
	return out, nil
}

func (m *memoryPostRepo) Count(_ context.Context, f repository.PostFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.filter(f))), nil
}

func (m *memoryPostRepo) find(publicID string) (int, *models.Post) {
	for i, p := range m.posts {
		if p.PublicID == publicID {
			return i, p
		}
	}
	return -1, nil
}

func (m *memoryPostRepo) FindOne(_ context.Context, publicID string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	_, p := m.find(publicID)
	if p == nil {
		return nil, repository.ErrNotFound
	}
	return clonePost(p), nil
}

func (m *memoryPostRepo) Update(_ context.Context, publicID string, patch models.PostPatch) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	_, p := m.find(publicID)
	if p == nil {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		for _, other := range m.posts {
			if other != p && other.Title == *patch.Title {
				return nil, repository.ErrDuplicateTitle
			}
		}
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Body != nil {
		p.Body = *patch.Body
	}
	wasDraft := p.State == models.PostStateDraft
	if patch.State != nil {
		p.State = *patch.State
	}
	if patch.Tags != nil {
		p.Tags = append([]string{}, (*patch.Tags)...)
	}
	if patch.ReadingTime != nil {
		rt := *patch.ReadingTime
		p.ReadingTime = &rt
	}
	if patch.CreatedAt != nil && wasDraft {
		p.CreatedAt = *patch.CreatedAt
	}
	p.UpdatedAt = m.tick()
	return clonePost(p), nil
}

func (m *memoryPostRepo) Delete(_ context.Context, publicID string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	i, p := m.find(publicID)
	if p == nil {
		return nil, repository.ErrNotFound
	}
	m.posts = append(m.posts[:i], m.posts[i+1:]...)
	return clonePost(p), nil
}

func (m *memoryPostRepo) IncrementReadCount(_ context.Context, publicID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	_, p := m.find(publicID)
	if p == nil {
		return 0, repository.ErrNotFound
	}
	p.ReadCount++
	return p.ReadCount, nil
}

type memoryDirectory struct {
	authors map[string]models.Author
	err     error
}

func (d *memoryDirectory) Resolve(_ context.Context, id string) (models.Author, error) {
	if d.err != nil {
		return models.Author{}, d.err
	}
	a, ok := d.authors[id]
	if !ok {
		return models.Author{}, repository.ErrNotFound
	}
	return a, nil
}

func (d *memoryDirectory) ResolveMany(_ context.Context, ids []string) (map[string]models.Author, error) {
	if d.err != nil {
		return nil, d.err
	}
	out := map[string]models.Author{}
	for _, id := range ids {
		if a, ok := d.authors[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func newDirectory() *memoryDirectory {
	return &memoryDirectory{authors: map[string]models.Author{
		"ada":  {ID: "ada", FirstName: "Ada", LastName: "Lovelace"},
		"alan": {ID: "alan", FirstName: "Alan", LastName: "Turing"},
	}}
}
