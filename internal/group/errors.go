package group

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrForbidden is returned when the viewer lacks the capability the
	// operation requires. It is never silently swallowed.
	ErrForbidden = errors.New("operation not allowed for this user")
	// ErrNotFound is returned when the requested group does not exist or
	// is soft deleted.
	ErrNotFound = errors.New("group not found")
)

// ValidationError maps field names to messages. It is returned before
// any persistence or side effect has happened, so the caller can safely
// re-render the form.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}

	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
