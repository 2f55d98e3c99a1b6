package models

import (
	"time"

	"gorm.io/gorm"
)

// Discussion is a conversation thread inside a group. Discussions are
// ordered by last update when summarized; a discussion whose author has
// been removed is excluded from summaries.
type Discussion struct {
	ID uint `gorm:"primaryKey"`
	// Name is the discussion title.
	Name string `gorm:"size:255;not null"`
	// Body is the opening post.
	Body string `gorm:"type:text"`
	// TotalComments counts replies, maintained by the discussion flow.
	TotalComments int `gorm:"not null;default:0"`
	// GroupID scopes the discussion to its group.
	GroupID uint `gorm:"index;not null"`
	Group   Group
	// UserID is the author. May reference a soft-deleted user.
	UserID *uint64
	User   *User
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default pluralized table naming.
func (Discussion) TableName() string {
	return "discussions"
}
