package model

import "time"

// Article 镜像的文章记录,Link唯一,作为去重键
type Article struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Link      string    `gorm:"size:500;uniqueIndex;not null" json:"link"`
	PubDate   time.Time `json:"pub_date"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Content   string    `gorm:"type:text" json:"content"`
	ImageURL  *string   `gorm:"size:500" json:"image_url,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}
