package models

import (
	"time"

	"gorm.io/gorm"
)

// Document is a file shared inside a group. The binary content lives in
// the uploads storage; the record keeps name, mime type and size.
type Document struct {
	ID uint `gorm:"primaryKey"`
	// Name is the display name of the file.
	Name string `gorm:"size:255;not null"`
	// Path is the storage-relative location of the file content.
	Path string `gorm:"size:255;not null"`
	// MimeType of the stored content.
	MimeType string `gorm:"size:100"`
	// Size in bytes.
	Size int64
	// GroupID scopes the document to its group.
	GroupID uint `gorm:"index;not null"`
	Group   Group
	// UserID is the uploader.
	UserID *uint64
	User   *User
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default pluralized table naming.
func (Document) TableName() string {
	return "documents"
}
