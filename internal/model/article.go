package model

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Article is the persisted form of a draft. Content holds the serialized
// body, possibly compressed; Compression names the codec used.
type Article struct {
	gorm.Model
	ID            string `gorm:"primaryKey;uuid;not null"`
	AuthorID      string `gorm:"uuid;not null;index"`
	Title         string
	Subtitle      string
	Content       string `gorm:"not null"`
	CategoryID    string `gorm:"uuid"`
	FeaturedImage string
	Language      string `gorm:"default:en"`
	Published     bool   `gorm:"default:false"`
	Revision      int64
	Compression   string
}

func (a *Article) MarshalBinary() ([]byte, error) {
	return json.Marshal(a)
}
