package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"go-mirror/internal/model"
	"go-mirror/internal/store"
)

// Entry 归一化后的Feed条目
type Entry struct {
	Link     string
	Title    string
	PubDate  time.Time
	Summary  string
	ImageURL *string
}

type FeedService struct {
	store       store.ArticleStore
	getter      Getter
	extractor   *Extractor
	parser      *gofeed.Parser
	feedURL     string
	maxArticles int
}

func NewFeedService(st store.ArticleStore, getter Getter, extractor *Extractor, feedURL string, maxArticles int) *FeedService {
	return &FeedService{
		store:       st,
		getter:      getter,
		extractor:   extractor,
		parser:      gofeed.NewParser(),
		feedURL:     feedURL,
		maxArticles: maxArticles,
	}
}

// FetchFeed 抓取Feed并入库,返回新增文章的标题。
// 流程:下载 → 解析归一化 → 去重 → 插入占位行 → 并发回填全文。
// 下载或解析失败中止本轮并返回错误;单条失败只跳过该条。
func (s *FeedService) FetchFeed(ctx context.Context) ([]string, error) {
	status, body, err := s.getter.Get(ctx, s.feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", s.feedURL, err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("fetch feed %s: unexpected status %d", s.feedURL, status)
	}

	entries, err := s.parseEntries(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.feedURL, err)
	}

	var (
		titles []string
		wg     sync.WaitGroup
	)

	for _, entry := range entries {
		if entry.Link == "" {
			log.Printf("[Feed] Skipping entry without link: %q", entry.Title)
			continue
		}

		// 去重:插入前先按链接查重,唯一索引兜底并发竞争
		exists, err := s.store.ExistsByLink(ctx, entry.Link)
		if err != nil {
			log.Printf("[Feed] Dedup check failed for %s: %v", entry.Link, err)
			continue
		}
		if exists {
			continue
		}

		article := &model.Article{
			Title:     entry.Title,
			Link:      entry.Link,
			PubDate:   entry.PubDate,
			Summary:   entry.Summary,
			Content:   "",
			ImageURL:  entry.ImageURL,
			FetchedAt: time.Now().UTC(),
		}

		id, err := s.store.Insert(ctx, article)
		if err != nil {
			log.Printf("[Feed] Failed to insert article %q: %v", entry.Title, err)
			continue
		}

		titles = append(titles, entry.Title)
		log.Printf("[Feed] Added article: %s", entry.Title)

		wg.Add(1)
		go func(id uint, link string) {
			defer wg.Done()
			s.enrich(ctx, id, link)
		}(id, entry.Link)
	}

	// 等全部回填结束再返回,保证任务不会超出本轮的生命周期
	wg.Wait()

	log.Printf("[Feed] Total new articles added: %d", len(titles))
	return titles, nil
}

// parseEntries 解析Feed并按固定规则归一化各字段
func (s *FeedService) parseEntries(body []byte) ([]Entry, error) {
	feed, err := s.parser.ParseString(string(body))
	if err != nil {
		return nil, err
	}

	items := feed.Items
	if len(items) > s.maxArticles {
		items = items[:s.maxArticles]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{
			Link:     item.Link,
			Title:    entryTitle(item),
			PubDate:  entryPubDate(item),
			Summary:  entrySummary(item),
			ImageURL: entryImage(item),
		})
	}
	return entries, nil
}

func entryTitle(item *gofeed.Item) string {
	if item.Title == "" {
		return "Untitled"
	}
	return item.Title
}

// entryPubDate 发布时间:published → updated → 当前时间
func entryPubDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Now().UTC()
}

func entrySummary(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

// entryImage 取第一个enclosure的链接作为配图
func entryImage(item *gofeed.Item) *string {
	if len(item.Enclosures) == 0 {
		return nil
	}
	if u := item.Enclosures[0].URL; u != "" {
		return &u
	}
	return nil
}

// enrich 抓取文章页面并回填全文,失败只记录日志,不影响其他条目
func (s *FeedService) enrich(ctx context.Context, id uint, link string) {
	page, err := s.extractor.Extract(ctx, link)
	if err != nil {
		log.Printf("[Feed] Failed to fetch full content for article %d: %v", id, err)
		return
	}

	if err := s.store.UpdateContent(ctx, id, page.Text, time.Now().UTC()); err != nil {
		log.Printf("[Feed] Failed to update full content for article %d: %v", id, err)
		return
	}
	log.Printf("[Feed] Full content saved for article %d", id)
}
