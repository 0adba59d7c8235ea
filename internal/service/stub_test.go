package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go-mirror/internal/model"
	"go-mirror/internal/store"
)

// fakeStore 内存版ArticleStore,行为对齐唯一索引语义
type fakeStore struct {
	mu       sync.Mutex
	articles []model.Article
	nextID   uint
}

var _ store.ArticleStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) ExistsByLink(_ context.Context, link string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.articles {
		if a.Link == link {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Insert(_ context.Context, article *model.Article) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.articles {
		if a.Link == article.Link {
			return 0, errors.New("UNIQUE constraint failed: articles.link")
		}
	}
	f.nextID++
	article.ID = f.nextID
	f.articles = append(f.articles, *article)
	return article.ID, nil
}

func (f *fakeStore) UpdateContent(_ context.Context, id uint, content string, fetchedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.articles {
		if f.articles[i].ID == id {
			f.articles[i].Content = content
			f.articles[i].FetchedAt = fetchedAt
			return nil
		}
	}
	return errors.New("article not found")
}

func (f *fakeStore) GetByID(_ context.Context, id uint) (*model.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.articles {
		if a.ID == id {
			copied := a
			return &copied, nil
		}
	}
	return nil, errors.New("article not found")
}

func (f *fakeStore) ListPage(_ context.Context, offset, limit int) ([]model.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sorted := make([]model.Article, len(f.articles))
	copy(sorted, f.articles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PubDate.After(sorted[j].PubDate)
	})
	if offset >= len(sorted) {
		return nil, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (f *fakeStore) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.articles)), nil
}

// seed 直接塞入一行已存在的文章,绕过Insert
func (f *fakeStore) seed(link, content string) model.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a := model.Article{
		ID:        f.nextID,
		Title:     "Existing",
		Link:      link,
		PubDate:   time.Now().UTC(),
		Content:   content,
		FetchedAt: time.Now().Add(-time.Hour).UTC(),
	}
	f.articles = append(f.articles, a)
	return a
}

func (f *fakeStore) byLink(link string) *model.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.articles {
		if a.Link == link {
			copied := a
			return &copied
		}
	}
	return nil
}

// fakeGetter 按URL返回预置响应,未配置的URL一律返回错误
type fakeResponse struct {
	status int
	body   string
	err    error
}

type fakeGetter struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
}

var _ Getter = (*fakeGetter)(nil)

func newFakeGetter() *fakeGetter {
	return &fakeGetter{responses: map[string]fakeResponse{}}
}

func (g *fakeGetter) set(url string, resp fakeResponse) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses[url] = resp
}

func (g *fakeGetter) Get(_ context.Context, url string) (int, []byte, error) {
	g.mu.Lock()
	resp, ok := g.responses[url]
	g.mu.Unlock()
	if !ok {
		return 0, nil, fmt.Errorf("connection refused: %s", url)
	}
	if resp.err != nil {
		return 0, nil, resp.err
	}
	return resp.status, []byte(resp.body), nil
}
