// Package models contains database model definitions.
package models

// Setting names used by the platform.
const (
	// SettingNotifyAdminsOnGroupCreate toggles the notification fan-out
	// to system administrators when a group is created. Value "1" = on.
	SettingNotifyAdminsOnGroupCreate = "notify_admins_on_group_create"
)

// Setting represents a configuration setting stored in the database.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique"`
	Value []byte `gorm:"type:blob"`
}
