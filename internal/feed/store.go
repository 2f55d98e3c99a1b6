package feed

import (
	"context"
	"time"

	"github.com/commonshub/commonshub/internal/db/models"
)

// Store is the narrow read interface the aggregator needs. Each method
// applies its collection's fixed filter, ordering and limit and returns
// rows in display order.
type Store interface {
	// RecentDiscussions returns the group's discussions that still have
	// an author, most recently updated first.
	RecentDiscussions(ctx context.Context, groupID uint, limit int) ([]models.Discussion, error)

	// RecentDocuments returns the group's documents, most recently
	// updated first.
	RecentDocuments(ctx context.Context, groupID uint, limit int) ([]models.Document, error)

	// UpcomingActions returns the group's actions starting at or after
	// now, soonest first.
	UpcomingActions(ctx context.Context, groupID uint, now time.Time, limit int) ([]models.Action, error)

	// RecentActivities returns the group's latest activity entries.
	RecentActivities(ctx context.Context, groupID uint, limit int) ([]models.Activity, error)
}
