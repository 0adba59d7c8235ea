package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
<title>Заголовок статьи</title>
<meta property="og:image" content="http://img.example/cover.jpg"/>
</head>
<body>
<article>
<h1>Заголовок статьи</h1>
<p>Первый абзац статьи, написанный достаточно подробно, чтобы извлечение текста уверенно определило его как часть основного содержимого страницы, а не как элемент навигации или рекламный блок.</p>
<p>Второй абзац продолжает изложение и добавляет новые детали, сохраняя общий объём текста на уровне, типичном для настоящей новостной заметки.</p>
</article>
</body>
</html>`

func TestExtractFromHTML(t *testing.T) {
	e := NewExtractor(newFakeGetter())

	page, err := e.ExtractFromHTML("http://donor.example/news/1", []byte(articleHTML))
	require.NoError(t, err)

	assert.Contains(t, page.Title, "Заголовок")
	assert.Contains(t, page.Text, "Первый абзац")
	assert.Contains(t, page.Text, "Второй абзац")
	assert.Equal(t, "http://img.example/cover.jpg", page.ImageURL)
}

func TestExtractDownloadsPage(t *testing.T) {
	getter := newFakeGetter()
	getter.set("http://donor.example/news/1", fakeResponse{status: 200, body: articleHTML})

	page, err := NewExtractor(getter).Extract(context.Background(), "http://donor.example/news/1")
	require.NoError(t, err)
	assert.NotEmpty(t, page.Text)
}

func TestExtractTransportError(t *testing.T) {
	getter := newFakeGetter()
	getter.set("http://donor.example/news/1", fakeResponse{err: errors.New("connection reset")})

	_, err := NewExtractor(getter).Extract(context.Background(), "http://donor.example/news/1")
	assert.Error(t, err)
}

func TestExtractBadStatus(t *testing.T) {
	getter := newFakeGetter()
	getter.set("http://donor.example/news/1", fakeResponse{status: 404, body: "not found"})

	_, err := NewExtractor(getter).Extract(context.Background(), "http://donor.example/news/1")
	assert.Error(t, err)
}

func TestPageContentSummary(t *testing.T) {
	longText := strings.Repeat("ж", 300)

	tests := []struct {
		name string
		page PageContent
		want string
	}{
		{
			name: "短正文没有现成摘要时直接用正文",
			page: PageContent{Text: "Короткая заметка."},
			want: "Короткая заметка.",
		},
		{
			name: "长正文截断并加省略号",
			page: PageContent{Text: longText},
			want: strings.Repeat("ж", 200) + "...",
		},
		{
			name: "提取器给出的摘要优先",
			page: PageContent{Excerpt: "Готовое описание", Text: "Короткая заметка."},
			want: "Готовое описание",
		},
		{
			name: "正文超长时现成摘要也要加省略号",
			page: PageContent{Excerpt: "Готовое описание", Text: longText},
			want: "Готовое описание...",
		},
		{
			name: "空页面",
			page: PageContent{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.Summary())
		})
	}
}
