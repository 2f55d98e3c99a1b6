package models

import "time"

// Role is the membership role of a user inside a group.
type Role int

const (
	// RoleMember is a plain group member.
	RoleMember Role = 10
	// RoleAdmin is a group administrator.
	RoleAdmin Role = 20
)

// DefaultNotificationInterval is the notification interval in minutes
// assigned to new memberships (daily digest).
const DefaultNotificationInterval = 60 * 24

// Membership represents the relation between a user and a group.
// The set of group administrators is exactly the memberships with
// RoleAdmin; a brand-new group has a single membership, its creator
// with RoleAdmin.
type Membership struct {
	// UserID is the ID of the user in this membership.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// GroupID is the ID of the group in this membership.
	GroupID uint `gorm:"primaryKey;column:group_id"`
	// Role is the membership role (RoleMember or RoleAdmin).
	Role Role `gorm:"not null;default:10"`
	// NotificationInterval is how often the member wants a digest,
	// in minutes. 0 means never.
	NotificationInterval int `gorm:"not null;default:0"`
	// User is the associated user (loaded via foreign key).
	// When a user is deleted, their group memberships are removed (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Group is the associated group (loaded via foreign key).
	// When a group is deleted, user memberships in it are removed (CASCADE).
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the membership was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the membership was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Membership model.
// This overrides GORM's default pluralized table naming.
func (Membership) TableName() string {
	return "memberships"
}

// IsAdmin reports whether this membership carries the admin role.
func (m *Membership) IsAdmin() bool {
	return m.Role == RoleAdmin
}
