package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// 摘要截断长度(按字符数)
const summaryLimit = 200

// PageContent 从文章页面提取出的内容
type PageContent struct {
	Title     string
	Text      string
	Excerpt   string
	ImageURL  string
	Published *time.Time
}

// Summary 生成摘要:优先使用提取器给出的摘要,否则截取正文开头;
// 正文超过截断长度时追加省略号
func (p *PageContent) Summary() string {
	summary := p.Excerpt
	body := []rune(p.Text)
	if summary == "" && len(body) > 0 {
		n := len(body)
		if n > summaryLimit {
			n = summaryLimit
		}
		summary = strings.TrimSpace(string(body[:n]))
	}
	if len(body) > summaryLimit {
		summary += "..."
	}
	return summary
}

// Extractor 文章正文提取器
type Extractor struct {
	getter Getter
}

func NewExtractor(getter Getter) *Extractor {
	return &Extractor{getter: getter}
}

// Extract 下载文章页面并提取内容
func (e *Extractor) Extract(ctx context.Context, link string) (*PageContent, error) {
	status, body, err := e.getter.Get(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("fetch page %s: %w", link, err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("fetch page %s: unexpected status %d", link, status)
	}
	return e.ExtractFromHTML(link, body)
}

// ExtractFromHTML 从已下载的HTML中提取内容
func (e *Extractor) ExtractFromHTML(link string, body []byte) (*PageContent, error) {
	pageURL, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("parse link %s: %w", link, err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract page %s: %w", link, err)
	}

	page := &PageContent{
		Title:     strings.TrimSpace(article.Title),
		Text:      strings.TrimSpace(article.TextContent),
		Excerpt:   strings.TrimSpace(article.Excerpt),
		ImageURL:  article.Image,
		Published: article.PublishedTime,
	}

	// readability偶尔提取不到正文或配图,用goquery兜底
	if page.Text == "" || page.ImageURL == "" {
		if doc, derr := goquery.NewDocumentFromReader(bytes.NewReader(body)); derr == nil {
			if page.Text == "" {
				page.Text = paragraphText(doc)
			}
			if page.ImageURL == "" {
				page.ImageURL, _ = doc.Find(`meta[property="og:image"]`).Attr("content")
			}
		}
	}

	return page, nil
}

// paragraphText 把页面里所有<p>的文本拼成正文
func paragraphText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}
