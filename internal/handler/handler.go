package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-mirror/internal/store"
)

type Handler struct {
	store           store.ArticleStore
	perPage         int
	gaMeasurementID string
}

func NewHandler(st store.ArticleStore, perPage int, gaMeasurementID string) *Handler {
	if perPage <= 0 {
		perPage = 10
	}
	return &Handler{
		store:           st,
		perPage:         perPage,
		gaMeasurementID: gaMeasurementID,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// 页面
	r.GET("/", h.IndexPage)
	r.GET("/news/:id", h.NewsDetailPage)

	// API
	api := r.Group("/api")
	{
		api.GET("/articles", h.ListArticles)
	}
}

// IndexPage 分页文章列表
func (h *Handler) IndexPage(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	ctx := c.Request.Context()

	total, err := h.store.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	articles, err := h.store.ListPage(ctx, (page-1)*h.perPage, h.perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totalPages := (total + int64(h.perPage) - 1) / int64(h.perPage)

	var prevPage, nextPage int
	if page > 1 {
		prevPage = page - 1
	}
	if int64(page) < totalPages {
		nextPage = page + 1
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"articles":          articles,
		"current_page":      page,
		"total_pages":       totalPages,
		"prev_page":         prevPage,
		"next_page":         nextPage,
		"ga_measurement_id": h.gaMeasurementID,
	})
}

// NewsDetailPage 文章详情
func (h *Handler) NewsDetailPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	article, err := h.store.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	c.HTML(http.StatusOK, "news_detail.html", gin.H{"article": article})
}

// ListArticles 文章列表API
func (h *Handler) ListArticles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	ctx := c.Request.Context()

	total, err := h.store.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	articles, err := h.store.ListPage(ctx, (page-1)*h.perPage, h.perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  articles,
		"total": total,
		"page":  page,
	})
}
