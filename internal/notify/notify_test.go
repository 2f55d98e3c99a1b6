package notify

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []uint64
	failFor map[uint64]error
}

func (f *fakeNotifier) Notify(_ context.Context, userID uint64, _ Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failFor[userID]; ok {
		return err
	}

	f.sent = append(f.sent, userID)

	return nil
}

func TestFanOutAllDelivered(t *testing.T) {
	n := &fakeNotifier{}
	ev := NewEvent(KindGroupCreated, 7, "Reading Club", 1)

	failed := FanOut(context.Background(), n, []uint64{2, 3, 4}, ev)

	assert.Empty(t, failed)
	assert.ElementsMatch(t, []uint64{2, 3, 4}, n.sent)
}

func TestFanOutPartialFailure(t *testing.T) {
	n := &fakeNotifier{failFor: map[uint64]error{3: errors.New("mailbox full")}}
	ev := NewEvent(KindGroupCreated, 7, "Reading Club", 1)

	failed := FanOut(context.Background(), n, []uint64{2, 3, 4}, ev)

	require.Len(t, failed, 1)
	assert.Equal(t, uint64(3), failed[0].UserID)
	assert.ElementsMatch(t, []uint64{2, 4}, n.sent)
	assert.Contains(t, failed.Error(), "user 3")
}

func TestFanOutNoRecipients(t *testing.T) {
	n := &fakeNotifier{}

	failed := FanOut(context.Background(), n, nil, NewEvent(KindGroupCreated, 1, "g", 1))

	assert.Empty(t, failed)
	assert.Empty(t, n.sent)
}

func TestNewEventFillsIdentity(t *testing.T) {
	ev := NewEvent(KindGroupCreated, 9, "Garden", 4)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, KindGroupCreated, ev.Kind)
	assert.Equal(t, uint(9), ev.GroupID)
	assert.False(t, ev.OccurredAt.IsZero())
}
