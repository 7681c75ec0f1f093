package model

import "gorm.io/gorm"

// ArticleRevision is a snapshot of an article taken automatically before
// every update, so any previous revision can be inspected or restored.
type ArticleRevision struct {
	gorm.Model
	ArticleID   string `gorm:"primaryKey;uuid;not null"`
	Revision    int64  `gorm:"primaryKey"`
	Title       string
	Subtitle    string
	Content     string
	Compression string
}

func (ArticleRevision) TableName() string {
	return "article_revisions"
}
