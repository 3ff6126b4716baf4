package syncstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/daybookhq/journal-sync-service/internal/domain"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Store holds the live normalized entry array for one user. Every change
// event triggers a full rebuild from the repository; subscribers always
// see a complete consistent snapshot, never a partial patch. When a
// rebuild fails the previous snapshot stays in place.
type Store struct {
	uid      int64
	repo     domain.EntryRepository
	notifier *Notifier
	logger   *zap.Logger

	mu          sync.RWMutex
	entries     []*domain.Entry
	ready       bool
	subscribers map[int64]func([]*domain.Entry)
	nextSubID   int64

	cancelListen func()
	stop         chan struct{}
	stopped      sync.WaitGroup
}

// NewStore bootstraps the snapshot and starts listening for changes.
// Bootstrap retries with backoff so a briefly unavailable database does
// not kill the subscription.
func NewStore(ctx context.Context, uid int64, repo domain.EntryRepository, notifier *Notifier, logger *zap.Logger) (*Store, error) {
	s := &Store{
		uid:         uid,
		repo:        repo,
		notifier:    notifier,
		logger:      logger,
		subscribers: make(map[int64]func([]*domain.Entry)),
		stop:        make(chan struct{}),
	}

	backoff := retry.WithMaxRetries(4, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		entries, err := repo.ListAll(ctx, uid)
		if err != nil {
			return retry.RetryableError(err)
		}
		s.entries = entries
		s.ready = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	ch, cancel := notifier.Listen(uid)
	s.cancelListen = cancel
	s.stopped.Add(1)
	go s.listen(ch)

	return s, nil
}

func (s *Store) listen(ch <-chan Change) {
	defer s.stopped.Done()
	for {
		select {
		case <-s.stop:
			return
		case change, ok := <-ch:
			if !ok {
				return
			}
			s.rebuild(change)
		}
	}
}

// rebuild replaces the snapshot with a fresh read. On error the
// last-known-good snapshot is kept and subscribers are not notified.
func (s *Store) rebuild(change Change) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := s.repo.ListAll(ctx, s.uid)
	if err != nil {
		s.logger.Error("syncstore rebuild failed, keeping previous snapshot",
			zap.Int64("uid", s.uid),
			zap.String("action", string(change.Action)),
			zap.Error(err))
		return
	}

	s.mu.Lock()
	s.entries = entries
	// 按注册顺序通知订阅者
	ids := make([]int64, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	subs := make([]func([]*domain.Entry), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, s.subscribers[id])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(entries)
	}
}

// Snapshot returns the current entry array. The slice is shared and must
// be treated as read-only by callers.
func (s *Store) Snapshot() []*domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

// Subscribe registers fn to run after every successful rebuild and
// returns an unsubscribe function. fn is invoked immediately with the
// current snapshot so new subscribers never start empty.
func (s *Store) Subscribe(fn func([]*domain.Entry)) func() {
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subscribers[id] = fn
	entries := s.entries
	s.mu.Unlock()

	fn(entries)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// SubscriberCount reports active subscriber callbacks.
func (s *Store) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// Close detaches the store from the notifier and waits for the listen
// goroutine to exit.
func (s *Store) Close() {
	s.cancelListen()
	close(s.stop)
	s.stopped.Wait()
}
