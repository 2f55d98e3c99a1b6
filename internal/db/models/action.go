package models

import (
	"time"

	"gorm.io/gorm"
)

// Action is a scheduled event of a group (a meeting, a workshop, a
// demonstration). Summaries show only actions that start now or later,
// soonest first.
type Action struct {
	ID uint `gorm:"primaryKey"`
	// Name is the action title.
	Name string `gorm:"size:255;not null"`
	// Body describes the action.
	Body string `gorm:"type:text"`
	// Location is a free-text place indication.
	Location string `gorm:"size:255"`
	// Start is the scheduled begin time, the ordering key for summaries.
	Start time.Time `gorm:"index;not null"`
	// Stop is the scheduled end time.
	Stop time.Time
	// GroupID scopes the action to its group.
	GroupID uint `gorm:"index;not null"`
	Group   Group
	// UserID is the creator.
	UserID *uint64
	User   *User
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default pluralized table naming.
func (Action) TableName() string {
	return "actions"
}
