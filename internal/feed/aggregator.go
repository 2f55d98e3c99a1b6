package feed

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/commonshub/commonshub/internal/access"
	"github.com/commonshub/commonshub/internal/db/models"
)

// Aggregator assembles group summaries from a Store.
type Aggregator struct {
	store Store
	// now is swappable for tests.
	now func() time.Time
}

// NewAggregator creates an Aggregator reading from the given store.
func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store, now: time.Now}
}

// Aggregate fetches every slot the visibility allows and assembles the
// summary. Permitted slots are fetched concurrently since they are
// independent reads; the summary waits for all of them. A slot whose
// fetch errors degrades to Failed while the others still populate, and
// a denied slot stays NotShown rather than masquerading as empty.
func (a *Aggregator) Aggregate(ctx context.Context, group *models.Group, vis access.Visibility) Summary {
	summary := Summary{
		Group:       group,
		Discussions: notShown[models.Discussion](),
		Documents:   notShown[models.Document](),
		Actions:     notShown[models.Action](),
		Activities:  notShown[models.Activity](),
	}

	var wg sync.WaitGroup

	if vis.Discussions {
		wg.Add(1)

		go func() {
			defer wg.Done()

			items, err := a.store.RecentDiscussions(ctx, group.ID, DiscussionLimit)
			summary.Discussions = slot(group.ID, "discussions", items, err)
		}()
	}

	if vis.Files {
		wg.Add(1)

		go func() {
			defer wg.Done()

			items, err := a.store.RecentDocuments(ctx, group.ID, DocumentLimit)
			summary.Documents = slot(group.ID, "documents", items, err)
		}()
	}

	if vis.Actions {
		wg.Add(1)

		go func() {
			defer wg.Done()

			items, err := a.store.UpcomingActions(ctx, group.ID, a.now(), ActionLimit)
			summary.Actions = slot(group.ID, "actions", items, err)
		}()
	}

	if vis.Activities {
		wg.Add(1)

		go func() {
			defer wg.Done()

			items, err := a.store.RecentActivities(ctx, group.ID, ActivityLimit)
			summary.Activities = slot(group.ID, "activities", items, err)
		}()
	}

	wg.Wait()

	return summary
}

// slot turns a fetch outcome into a Result, logging degraded slots.
func slot[T any](groupID uint, name string, items []T, err error) Result[T] {
	if err != nil {
		log.Error().Err(err).Uint("group_id", groupID).Str("slot", name).Msg("summary slot fetch failed")

		return failed[T](err)
	}

	return shown(items)
}
