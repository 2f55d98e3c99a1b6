package access

import (
	"github.com/rs/zerolog/log"

	"github.com/commonshub/commonshub/internal/db/models"
)

// Capability names an action a viewer may or may not perform on a group.
type Capability string

// Capability constants define the fixed set of gated actions.
const (
	// CapViewDiscussions allows reading the group's discussions.
	CapViewDiscussions Capability = "viewDiscussions"
	// CapViewFiles allows reading the group's shared documents.
	CapViewFiles Capability = "viewFiles"
	// CapViewActions allows reading the group's scheduled actions.
	CapViewActions Capability = "viewActions"
	// CapViewActivities allows reading the group's activity log.
	CapViewActivities Capability = "viewActivities"
	// CapCreate allows creating a new group.
	CapCreate Capability = "create"
	// CapChangeGroupType allows changing the group's type on update.
	CapChangeGroupType Capability = "changeGroupType"
	// CapDelete allows soft-deleting the group.
	CapDelete Capability = "delete"
)

// Allows reports whether the viewer holds the capability on the group.
//
// Anonymous viewers are always denied here; the looser anonymous policy
// for public groups lives in Resolve, where there is no membership to
// check. Group may be nil only for CapCreate. An unknown capability is a
// programming error and aborts the process.
func Allows(v Viewer, g *models.Group, c Capability) bool {
	switch c {
	case CapCreate:
		return v.Authenticated && v.Verified

	case CapViewDiscussions, CapViewFiles, CapViewActions, CapViewActivities:
		if !v.Authenticated {
			return false
		}

		if g.MembershipFor(v.ID) != nil {
			return true
		}

		return g.IsPublic

	case CapChangeGroupType, CapDelete:
		if !v.Authenticated {
			return false
		}

		m := g.MembershipFor(v.ID)

		return m != nil && m.Role == models.RoleAdmin

	default:
		log.Fatal().Str("capability", string(c)).Msg("unknown capability")
		return false
	}
}
