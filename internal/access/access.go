// Package access holds every authorization decision of the platform in
// one place: a capability gate deciding what a viewer may do with a
// group, and a visibility resolver deciding which group collections a
// viewer may see. The package is pure, it never touches storage; callers
// preload the group's memberships before asking.
package access

// Viewer identifies who is looking. The zero value is an anonymous
// visitor.
type Viewer struct {
	// ID is the user ID, 0 for anonymous visitors.
	ID uint64
	// Verified indicates a confirmed account. Only verified viewers may
	// create groups.
	Verified bool
	// Authenticated indicates a signed-in viewer.
	Authenticated bool
}

// Anonymous returns the viewer identity of a visitor without a session.
func Anonymous() Viewer {
	return Viewer{}
}

// SignedIn returns the viewer identity of an authenticated user.
func SignedIn(userID uint64, verified bool) Viewer {
	return Viewer{ID: userID, Verified: verified, Authenticated: true}
}
