package models

import (
	"time"

	"gorm.io/gorm"
)

// GroupType categorizes a group by the kind of collective behind it.
type GroupType string

const (
	// GroupTypeAssociation is a formally registered association.
	GroupTypeAssociation GroupType = "association"
	// GroupTypeInformal is an informal collective without legal form.
	GroupTypeInformal GroupType = "informal"
	// GroupTypeCompany is a company or cooperative.
	GroupTypeCompany GroupType = "company"
	// GroupTypePublicBody is a public institution or local authority.
	GroupTypePublicBody GroupType = "public_body"
)

// GroupTypes lists every valid GroupType value, used by form rendering
// and by the lifecycle validation.
var GroupTypes = []GroupType{
	GroupTypeAssociation,
	GroupTypeInformal,
	GroupTypeCompany,
	GroupTypePublicBody,
}

// ValidGroupType reports whether t is one of the known group types.
func ValidGroupType(t GroupType) bool {
	for _, known := range GroupTypes {
		if t == known {
			return true
		}
	}

	return false
}

// Group represents a community group. A group owns discussions, documents,
// actions and an activity log, and carries its own public/private flag
// which drives what anonymous visitors and non-members may see.
//
// A group with a non-empty address and a successful geocode has both
// coordinates set; a failed or absent geocode leaves both nil. Nil
// coordinates are a normal state, not an error.
type Group struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey"`
	// Name is the display name of the group.
	Name string `gorm:"size:255;not null"`
	// Body is the free-text presentation of the group.
	Body string `gorm:"type:text;not null"`
	// GroupType categorizes the group (association, informal, ...).
	GroupType GroupType `gorm:"type:varchar(32);not null"`
	// IsPublic makes discussions, documents and actions visible to
	// anonymous visitors and authenticated non-members.
	IsPublic bool `gorm:"not null;default:false"`
	// Address is a free-text postal address, may be empty.
	Address string `gorm:"size:255"`
	// Latitude and Longitude hold the geocoded position of Address.
	// Both nil when the address is empty or could not be geocoded.
	Latitude  *float64
	Longitude *float64
	// UserID is the user the group record is attributed to. It is set to
	// the acting editor on every save.
	UserID *uint64
	// User is the attributed user, loaded via foreign key.
	User *User `gorm:"foreignKey:UserID"`
	// Tags is the set of tags attached to the group. Membership is
	// unique, insertion order carries no meaning.
	Tags []Tag `gorm:"many2many:group_tags"`
	// Memberships are the user/group relations including roles.
	Memberships []Membership `gorm:"foreignKey:GroupID"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
	// DeletedAt is the soft delete marker (managed by GORM).
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for the Group model.
// This overrides GORM's default pluralized table naming.
func (Group) TableName() string {
	return "groups"
}

// MembershipFor returns the membership of the given user in this group,
// or nil when the user is not a member. Memberships must be preloaded.
func (g *Group) MembershipFor(userID uint64) *Membership {
	for i := range g.Memberships {
		if g.Memberships[i].UserID == userID {
			return &g.Memberships[i]
		}
	}

	return nil
}

// Admins returns the memberships holding the admin role.
// Memberships must be preloaded.
func (g *Group) Admins() []Membership {
	var admins []Membership

	for _, m := range g.Memberships {
		if m.Role == RoleAdmin {
			admins = append(admins, m)
		}
	}

	return admins
}
