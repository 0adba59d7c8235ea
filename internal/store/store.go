package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"go-mirror/internal/model"
)

// ArticleStore 文章持久化端口,抓取管线和Web层都只依赖这个接口
type ArticleStore interface {
	ExistsByLink(ctx context.Context, link string) (bool, error)
	Insert(ctx context.Context, article *model.Article) (uint, error)
	UpdateContent(ctx context.Context, id uint, content string, fetchedAt time.Time) error
	GetByID(ctx context.Context, id uint) (*model.Article, error)
	ListPage(ctx context.Context, offset, limit int) ([]model.Article, error)
	Count(ctx context.Context) (int64, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ExistsByLink 去重检查:是否已存在相同链接的文章
func (s *GormStore) ExistsByLink(ctx context.Context, link string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Article{}).
		Where("link = ?", link).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert 插入新文章,链接冲突时返回唯一约束错误
func (s *GormStore) Insert(ctx context.Context, article *model.Article) (uint, error) {
	if err := s.db.WithContext(ctx).Create(article).Error; err != nil {
		return 0, err
	}
	return article.ID, nil
}

// UpdateContent 回填全文并刷新抓取时间
func (s *GormStore) UpdateContent(ctx context.Context, id uint, content string, fetchedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":    content,
			"fetched_at": fetchedAt,
		}).Error
}

func (s *GormStore) GetByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := s.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// ListPage 按发布时间倒序分页
func (s *GormStore) ListPage(ctx context.Context, offset, limit int) ([]model.Article, error) {
	var articles []model.Article
	err := s.db.WithContext(ctx).
		Order("pub_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&articles).Error
	return articles, err
}

func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Article{}).Count(&count).Error
	return count, err
}
