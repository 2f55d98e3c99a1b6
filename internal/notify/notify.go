// Package notify carries platform events to users. The transport is a
// narrow interface with no delivery guarantee; the lifecycle workflow
// only fans out and reports. Failures are per recipient and never abort
// the workflow that triggered them.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event kinds sent by the platform.
const (
	// KindGroupCreated is the fan-out to system administrators when a
	// group is created.
	KindGroupCreated = "group.created"
)

// Event is a notification payload.
type Event struct {
	// ID uniquely identifies this event instance.
	ID string
	// Kind names the event (KindGroupCreated, ...).
	Kind string
	// GroupID and GroupName identify the subject group.
	GroupID   uint
	GroupName string
	// ActorID is the user who triggered the event.
	ActorID uint64
	// OccurredAt is when the event happened.
	OccurredAt time.Time
}

// NewEvent builds an event with a fresh UID and timestamp.
func NewEvent(kind string, groupID uint, groupName string, actorID uint64) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		GroupID:    groupID,
		GroupName:  groupName,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}
}

// Notifier delivers one event to one user. Fire-and-report: the core
// requires no delivery guarantee from implementations.
type Notifier interface {
	Notify(ctx context.Context, userID uint64, ev Event) error
}

// DeliveryError records a single failed recipient.
type DeliveryError struct {
	UserID uint64
	Err    error
}

func (e DeliveryError) Error() string {
	return fmt.Sprintf("delivery to user %d failed: %v", e.UserID, e.Err)
}

// DeliveryErrors aggregates the failed recipients of one fan-out.
// An empty value means every recipient was reached.
type DeliveryErrors []DeliveryError

func (e DeliveryErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, d := range e {
		msgs = append(msgs, d.Error())
	}

	return strings.Join(msgs, "; ")
}

// FanOut sends the event to every recipient concurrently and collects
// the failures. One recipient failing does not cancel the others; the
// caller decides what to do with the aggregate (the group workflow only
// logs it).
func FanOut(ctx context.Context, n Notifier, recipients []uint64, ev Event) DeliveryErrors {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed DeliveryErrors
	)

	for _, userID := range recipients {
		wg.Add(1)

		go func(userID uint64) {
			defer wg.Done()

			if err := n.Notify(ctx, userID, ev); err != nil {
				mu.Lock()
				failed = append(failed, DeliveryError{UserID: userID, Err: err})
				mu.Unlock()
			}
		}(userID)
	}

	wg.Wait()

	if len(failed) > 0 {
		log.Warn().Str("event", ev.Kind).Str("event_id", ev.ID).
			Int("failed", len(failed)).Int("recipients", len(recipients)).
			Msg("notification fan-out partially failed")
	}

	return failed
}

// LogNotifier writes notifications to the application log. It is the
// in-tree transport; mail and push delivery live behind the same
// interface elsewhere.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(_ context.Context, userID uint64, ev Event) error {
	log.Info().Uint64("user_id", userID).Str("event", ev.Kind).Str("event_id", ev.ID).
		Uint("group_id", ev.GroupID).Str("group_name", ev.GroupName).
		Msg("notification")

	return nil
}
