package syncstore

import (
	"context"
	"sync"

	"github.com/daybookhq/journal-sync-service/internal/domain"

	"go.uber.org/zap"
)

// Hub hands out ref-counted per-user stores. The first acquisition for a
// user bootstraps a store; the last release tears it down so idle users
// cost nothing.
type Hub struct {
	repo     domain.EntryRepository
	notifier *Notifier
	logger   *zap.Logger

	mu     sync.Mutex
	stores map[int64]*hubEntry
}

type hubEntry struct {
	store *Store
	refs  int
}

func NewHub(repo domain.EntryRepository, notifier *Notifier, logger *zap.Logger) *Hub {
	return &Hub{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		stores:   make(map[int64]*hubEntry),
	}
}

// Acquire returns the user's store, creating it on first use. The caller
// must invoke the returned release function exactly once when done.
func (h *Hub) Acquire(ctx context.Context, uid int64) (*Store, func(), error) {
	h.mu.Lock()
	if entry, ok := h.stores[uid]; ok {
		entry.refs++
		h.mu.Unlock()
		return entry.store, h.releaseFunc(uid), nil
	}
	h.mu.Unlock()

	// bootstrap outside the lock, it may hit the database repeatedly
	store, err := NewStore(ctx, uid, h.repo, h.notifier, h.logger)
	if err != nil {
		return nil, nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if entry, ok := h.stores[uid]; ok {
		// lost the race, keep the winner's store
		entry.refs++
		store.Close()
		return entry.store, h.releaseFunc(uid), nil
	}
	h.stores[uid] = &hubEntry{store: store, refs: 1}
	return store, h.releaseFunc(uid), nil
}

func (h *Hub) releaseFunc(uid int64) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			entry, ok := h.stores[uid]
			if !ok {
				h.mu.Unlock()
				return
			}
			entry.refs--
			if entry.refs > 0 {
				h.mu.Unlock()
				return
			}
			delete(h.stores, uid)
			h.mu.Unlock()

			entry.store.Close()
			h.logger.Info("syncstore released", zap.Int64("uid", uid))
		})
	}
}

// ActiveStores reports how many users currently have a live store.
func (h *Hub) ActiveStores() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stores)
}

// Shutdown closes every live store.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	stores := h.stores
	h.stores = make(map[int64]*hubEntry)
	h.mu.Unlock()

	for _, entry := range stores {
		entry.store.Close()
	}
}
