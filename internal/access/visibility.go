package access

import (
	"github.com/commonshub/commonshub/internal/db/models"
)

// Visibility says which of the four group collections a viewer may see.
type Visibility struct {
	Discussions bool
	Files       bool
	Actions     bool
	Activities  bool
}

// Resolve decides per collection whether the viewer may see it.
//
// Authenticated viewers get exactly the gate's answer per capability.
// Anonymous visitors have no membership to check, so the group's own
// public flag substitutes for the gate on discussions, files and
// actions. The activity log is never exposed to anonymous visitors,
// public group or not.
func Resolve(v Viewer, g *models.Group) Visibility {
	if v.Authenticated {
		return Visibility{
			Discussions: Allows(v, g, CapViewDiscussions),
			Files:       Allows(v, g, CapViewFiles),
			Actions:     Allows(v, g, CapViewActions),
			Activities:  Allows(v, g, CapViewActivities),
		}
	}

	return Visibility{
		Discussions: g.IsPublic,
		Files:       g.IsPublic,
		Actions:     g.IsPublic,
		Activities:  false,
	}
}
