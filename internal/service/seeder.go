package service

import (
	"context"
	"encoding/xml"
	"log"
	"strings"
	"time"

	"go-mirror/internal/model"
	"go-mirror/internal/store"
)

// sitemapDoc 站点地图文档,XMLName用来校验根元素
type sitemapDoc struct {
	XMLName xml.Name
	URLs    []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// Seeder 站点地图批量导入,一次性执行,不参与调度
type Seeder struct {
	store       store.ArticleStore
	getter      Getter
	extractor   *Extractor
	sitemapURL  string
	pathPrefix  string
	maxArticles int
}

func NewSeeder(st store.ArticleStore, getter Getter, extractor *Extractor, sitemapURL, pathPrefix string, maxArticles int) *Seeder {
	return &Seeder{
		store:       st,
		getter:      getter,
		extractor:   extractor,
		sitemapURL:  sitemapURL,
		pathPrefix:  pathPrefix,
		maxArticles: maxArticles,
	}
}

// ParseSitemapURLs 抓取站点地图,筛选带目标前缀且后缀非空的链接。
// 网络错误、非urlset根元素、XML解析失败都只记日志并返回空列表。
func (s *Seeder) ParseSitemapURLs(ctx context.Context) []string {
	log.Printf("[Seed] Fetching sitemap from %s", s.sitemapURL)

	status, body, err := s.getter.Get(ctx, s.sitemapURL)
	if err != nil {
		log.Printf("[Seed] Failed to fetch sitemap %s: %v", s.sitemapURL, err)
		return nil
	}
	if status < 200 || status >= 300 {
		log.Printf("[Seed] Failed to fetch sitemap %s: unexpected status %d", s.sitemapURL, status)
		return nil
	}

	var doc sitemapDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		log.Printf("[Seed] Failed to parse sitemap XML: %v", err)
		return nil
	}
	if doc.XMLName.Local != "urlset" {
		log.Printf("[Seed] File is not a standard <urlset> sitemap, skipping")
		return nil
	}

	var urls []string
	for _, u := range doc.URLs {
		loc := strings.TrimSpace(u.Loc)
		if !strings.HasPrefix(loc, s.pathPrefix) {
			continue
		}
		if strings.TrimSpace(loc[len(s.pathPrefix):]) == "" {
			continue
		}

		urls = append(urls, loc)
		if len(urls) >= s.maxArticles {
			log.Printf("[Seed] Reached maximum article limit (%d), stopping sitemap parsing", s.maxArticles)
			break
		}
	}
	return urls
}

// Seed 批量导入历史文章:逐条去重、同步提取全文并入库,
// 单条失败跳过,整批继续。返回成功导入的数量。
func (s *Seeder) Seed(ctx context.Context) int {
	links := s.ParseSitemapURLs(ctx)
	if len(links) == 0 {
		log.Printf("[Seed] No article links found in sitemap, seeding stopped")
		return 0
	}

	log.Printf("[Seed] Processing %d articles for seeding", len(links))

	seeded := 0
	for _, link := range links {
		exists, err := s.store.ExistsByLink(ctx, link)
		if err != nil {
			log.Printf("[Seed] Dedup check failed for %s: %v", link, err)
			continue
		}
		if exists {
			continue
		}

		page, err := s.extractor.Extract(ctx, link)
		if err != nil {
			log.Printf("[Seed] Failed to process article %s: %v", link, err)
			continue
		}

		title := page.Title
		if title == "" {
			title = "Untitled"
		}

		var imageURL *string
		if page.ImageURL != "" {
			imageURL = &page.ImageURL
		}

		pubDate := time.Now().UTC()
		if page.Published != nil {
			pubDate = *page.Published
		}

		article := &model.Article{
			Title:     title,
			Link:      link,
			PubDate:   pubDate,
			Summary:   page.Summary(),
			Content:   page.Text,
			ImageURL:  imageURL,
			FetchedAt: time.Now().UTC(),
		}

		if _, err := s.store.Insert(ctx, article); err != nil {
			log.Printf("[Seed] Failed to insert article %q: %v", title, err)
			continue
		}

		seeded++
		log.Printf("[Seed] Seeded article: %s", title)
	}

	log.Printf("[Seed] Seeding finished, %d articles added", seeded)
	return seeded
}
