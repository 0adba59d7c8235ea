package service

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Getter HTTP抓取端口,Feed、文章页面和站点地图都通过它下载
type Getter interface {
	Get(ctx context.Context, url string) (int, []byte, error)
}

// HTTPGetter 默认实现:带User-Agent和超时的http.Client
type HTTPGetter struct {
	client    *http.Client
	userAgent string
}

func NewHTTPGetter(userAgent string, timeout time.Duration) *HTTPGetter {
	return &HTTPGetter{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (g *HTTPGetter) Get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
