package syncstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/daybookhq/journal-sync-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepo is an in-memory EntryRepository with a switchable failure mode.
type fakeRepo struct {
	domain.EntryRepository

	mu      sync.Mutex
	entries map[int64][]*domain.Entry
	fail    bool
	lists   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: make(map[int64][]*domain.Entry)}
}

func (f *fakeRepo) setEntries(uid int64, entries []*domain.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[uid] = entries
}

func (f *fakeRepo) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *fakeRepo) ListAll(ctx context.Context, uid int64) ([]*domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.fail {
		return nil, errors.New("database gone")
	}
	return f.entries[uid], nil
}

func makeEntries(uid int64, n int) []*domain.Entry {
	out := make([]*domain.Entry, 0, n)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		out = append(out, domain.Normalize(int64(i+1), uid, &domain.RawDocument{
			Title: "entry",
			Date:  base.AddDate(0, 0, i).UnixMilli(),
		}))
	}
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestStoreBootstrapSnapshot(t *testing.T) {
	repo := newFakeRepo()
	repo.setEntries(1, makeEntries(1, 3))
	notifier := NewNotifier()

	store, err := NewStore(context.Background(), 1, repo, notifier, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	assert.Len(t, store.Snapshot(), 3)
}

func TestStoreRebuildOnPublish(t *testing.T) {
	repo := newFakeRepo()
	repo.setEntries(1, makeEntries(1, 1))
	notifier := NewNotifier()

	store, err := NewStore(context.Background(), 1, repo, notifier, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	var mu sync.Mutex
	var got []*domain.Entry
	unsubscribe := store.Subscribe(func(entries []*domain.Entry) {
		mu.Lock()
		got = entries
		mu.Unlock()
	})
	defer unsubscribe()

	// immediate callback with the bootstrap snapshot
	mu.Lock()
	assert.Len(t, got, 1)
	mu.Unlock()

	repo.setEntries(1, makeEntries(1, 2))
	notifier.Publish(Change{UID: 1, EntryID: 2, Action: ChangeCreate})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	})
	assert.Len(t, store.Snapshot(), 2)
}

func TestStoreNotifiesInRegistrationOrder(t *testing.T) {
	repo := newFakeRepo()
	repo.setEntries(1, makeEntries(1, 1))
	notifier := NewNotifier()

	store, err := NewStore(context.Background(), 1, repo, notifier, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	const subscribers = 8
	var mu sync.Mutex
	var order []int

	for i := 0; i < subscribers; i++ {
		i := i
		defer store.Subscribe(func([]*domain.Entry) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})()
	}

	mu.Lock()
	order = order[:0] // 丢弃订阅时的即时回调
	mu.Unlock()

	for round := 0; round < 5; round++ {
		notifier.Publish(Change{UID: 1, EntryID: 1, Action: ChangeUpdate})
		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(order) == subscribers
		})
		mu.Lock()
		for i, got := range order {
			assert.Equal(t, i, got, "round %d position %d", round, i)
		}
		order = order[:0]
		mu.Unlock()
	}
}

func TestStoreKeepsLastKnownGoodOnError(t *testing.T) {
	repo := newFakeRepo()
	repo.setEntries(1, makeEntries(1, 2))
	notifier := NewNotifier()

	store, err := NewStore(context.Background(), 1, repo, notifier, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	var mu sync.Mutex
	notified := 0
	unsubscribe := store.Subscribe(func(entries []*domain.Entry) {
		mu.Lock()
		notified++
		mu.Unlock()
	})
	defer unsubscribe()

	repo.setFail(true)
	notifier.Publish(Change{UID: 1, Action: ChangeUpdate})

	// rebuild fails: snapshot survives, subscriber not re-invoked
	waitFor(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return repo.lists >= 2
	})
	assert.Len(t, store.Snapshot(), 2)
	mu.Lock()
	assert.Equal(t, 1, notified)
	mu.Unlock()

	// recovery on the next event
	repo.setFail(false)
	repo.setEntries(1, makeEntries(1, 4))
	notifier.Publish(Change{UID: 1, Action: ChangeUpdate})
	waitFor(t, func() bool { return len(store.Snapshot()) == 4 })
}

func TestStoreUnsubscribe(t *testing.T) {
	repo := newFakeRepo()
	repo.setEntries(1, makeEntries(1, 1))
	notifier := NewNotifier()

	store, err := NewStore(context.Background(), 1, repo, notifier, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	var mu sync.Mutex
	calls := 0
	unsubscribe := store.Subscribe(func(entries []*domain.Entry) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	assert.Equal(t, 1, store.SubscriberCount())

	unsubscribe()
	assert.Equal(t, 0, store.SubscriberCount())

	notifier.Publish(Change{UID: 1, Action: ChangeCreate})
	waitFor(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return repo.lists >= 2
	})
	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
}

func TestStoreIgnoresOtherUsers(t *testing.T) {
	repo := newFakeRepo()
	repo.setEntries(1, makeEntries(1, 1))
	repo.setEntries(2, makeEntries(2, 5))
	notifier := NewNotifier()

	store, err := NewStore(context.Background(), 1, repo, notifier, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	notifier.Publish(Change{UID: 2, Action: ChangeCreate})
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, store.Snapshot(), 1)
}

func TestHubRefCounting(t *testing.T) {
	repo := newFakeRepo()
	repo.setEntries(1, makeEntries(1, 1))
	notifier := NewNotifier()
	hub := NewHub(repo, notifier, zap.NewNop())

	ctx := context.Background()
	storeA, releaseA, err := hub.Acquire(ctx, 1)
	require.NoError(t, err)
	storeB, releaseB, err := hub.Acquire(ctx, 1)
	require.NoError(t, err)

	// same user shares one store
	assert.Same(t, storeA, storeB)
	assert.Equal(t, 1, hub.ActiveStores())
	assert.Equal(t, 1, notifier.ListenerCount(1))

	releaseA()
	assert.Equal(t, 1, hub.ActiveStores())

	// double release is a no-op
	releaseA()
	assert.Equal(t, 1, hub.ActiveStores())

	releaseB()
	assert.Equal(t, 0, hub.ActiveStores())
	assert.Equal(t, 0, notifier.ListenerCount(1))
}

func TestHubShutdown(t *testing.T) {
	repo := newFakeRepo()
	repo.setEntries(1, makeEntries(1, 1))
	repo.setEntries(2, makeEntries(2, 1))
	notifier := NewNotifier()
	hub := NewHub(repo, notifier, zap.NewNop())

	ctx := context.Background()
	_, _, err := hub.Acquire(ctx, 1)
	require.NoError(t, err)
	_, _, err = hub.Acquire(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, hub.ActiveStores())

	hub.Shutdown()
	assert.Equal(t, 0, hub.ActiveStores())
	assert.Equal(t, 0, notifier.ListenerCount(1))
	assert.Equal(t, 0, notifier.ListenerCount(2))
}
