package models

import "time"

// Tag is a label attachable to groups. Tags are shared across groups
// through the group_tags join table; membership in a group's tag set is
// unique.
type Tag struct {
	ID uint `gorm:"primaryKey"`
	// Name is the tag text, unique system wide.
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time
}

// TableName overrides GORM's default pluralized table naming.
func (Tag) TableName() string {
	return "tags"
}
