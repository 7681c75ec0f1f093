package model

import "gorm.io/gorm"

// MediaReference binds a media URL to an article. Uploaded objects carry
// the storage path used to delete them; externally linked URLs do not.
type MediaReference struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null"`
	ArticleID   string `gorm:"uuid;not null;index"`
	AuthorID    string `gorm:"uuid;not null"`
	StorageURL  string `gorm:"not null"`
	StoragePath string
	Uploaded    bool `gorm:"default:false"`
}

func (MediaReference) TableName() string {
	return "media_references"
}
