// Package feed assembles the bounded summary a group page shows: the
// five most recently updated discussions and documents, the next ten
// upcoming actions and the last ten activity log entries. Which slots
// get filled is decided beforehand by the access package; a slot the
// viewer may not see is marked not shown, which is a different thing
// than shown with zero items.
package feed

import (
	"github.com/commonshub/commonshub/internal/db/models"
)

// Summary caps are fixed display policy, not user configurable.
const (
	// DiscussionLimit caps the discussions slot.
	DiscussionLimit = 5
	// DocumentLimit caps the documents slot.
	DocumentLimit = 5
	// ActionLimit caps the upcoming actions slot.
	ActionLimit = 10
	// ActivityLimit caps the activity log slot.
	ActivityLimit = 10
)

// Status tells how a summary slot ended up.
type Status int

const (
	// NotShown means the viewer is not permitted to see this slot.
	NotShown Status = iota
	// Shown means the slot is visible; Items may legitimately be empty.
	Shown
	// Failed means the slot was permitted but its fetch errored; the
	// rest of the summary is still usable.
	Failed
)

// Result is one summary slot: either withheld from the viewer, shown
// with its items, or degraded by a fetch error.
type Result[T any] struct {
	Status Status
	Items  []T
	Err    error
}

// IsShown reports whether the slot is visible to the viewer.
func (r Result[T]) IsShown() bool {
	return r.Status == Shown
}

// IsFailed reports whether the slot degraded on a fetch error.
func (r Result[T]) IsFailed() bool {
	return r.Status == Failed
}

// notShown is the marker for a slot the viewer may not see.
func notShown[T any]() Result[T] {
	return Result[T]{Status: NotShown}
}

// shown wraps fetched items (possibly zero of them).
func shown[T any](items []T) Result[T] {
	if items == nil {
		items = []T{}
	}

	return Result[T]{Status: Shown, Items: items}
}

// failed marks a slot degraded by a fetch error.
func failed[T any](err error) Result[T] {
	return Result[T]{Status: Failed, Err: err}
}

// Summary is the assembled group view model handed to the rendering
// layer.
type Summary struct {
	Group       *models.Group
	Discussions Result[models.Discussion]
	Documents   Result[models.Document]
	Actions     Result[models.Action]
	Activities  Result[models.Activity]
}
