package models

import "time"

// Activity kinds written by the lifecycle workflow.
const (
	ActivityGroupCreated = "group.created"
	ActivityGroupUpdated = "group.updated"
	ActivityGroupDeleted = "group.deleted"
)

// Activity is an entry of a group's activity log. The log is never shown
// to anonymous visitors, whatever the group's public flag says.
type Activity struct {
	ID uint `gorm:"primaryKey"`
	// UID is a stable unique identifier for external references.
	UID string `gorm:"size:36;uniqueIndex;not null"`
	// Kind names what happened (group.created, discussion.replied, ...).
	Kind string `gorm:"size:100;not null"`
	// GroupID scopes the entry to its group.
	GroupID uint `gorm:"index;not null"`
	Group   Group
	// UserID is the acting user.
	UserID *uint64
	User   *User
	// CreatedAt is the recency ordering key for summaries.
	CreatedAt time.Time
}

// TableName overrides GORM's default pluralized table naming.
func (Activity) TableName() string {
	return "activities"
}
