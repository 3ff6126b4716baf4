// Package syncstore keeps a live, normalized snapshot of each user's
// entries and fans change notifications out to subscribers.
package syncstore

import (
	"sync"
)

// ChangeAction 变更类型
type ChangeAction string

const (
	ChangeCreate  ChangeAction = "create"
	ChangeUpdate  ChangeAction = "update"
	ChangeTrash   ChangeAction = "trash"
	ChangeRestore ChangeAction = "restore"
	ChangePurge   ChangeAction = "purge"
)

// Change 单次条目变更事件
type Change struct {
	UID     int64
	EntryID int64
	Action  ChangeAction
}

// Notifier is the per-user change bus. Mutations publish here after they
// commit; stores listen and rebuild. Delivery is asynchronous, a slow
// listener never blocks the publisher.
type Notifier struct {
	mu        sync.Mutex
	nextID    int64
	listeners map[int64]map[int64]chan Change // uid -> listener id -> channel
}

func NewNotifier() *Notifier {
	return &Notifier{
		listeners: make(map[int64]map[int64]chan Change),
	}
}

// Listen registers a change channel for a user. The returned cancel
// function closes the channel and removes the registration.
func (n *Notifier) Listen(uid int64) (<-chan Change, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	if n.listeners[uid] == nil {
		n.listeners[uid] = make(map[int64]chan Change)
	}
	// buffered so a rebuild in flight doesn't drop the next event
	ch := make(chan Change, 16)
	n.listeners[uid][id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if _, ok := n.listeners[uid][id]; !ok {
			return
		}
		delete(n.listeners[uid], id)
		if len(n.listeners[uid]) == 0 {
			delete(n.listeners, uid)
		}
		close(ch)
	}
	return ch, cancel
}

// Publish delivers a change to every listener of its user. When a
// listener's buffer is full the event is dropped for that listener; the
// next rebuild picks the state up anyway.
func (n *Notifier) Publish(change Change) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.listeners[change.UID] {
		select {
		case ch <- change:
		default:
		}
	}
}

// ListenerCount reports how many listeners a user currently has.
func (n *Notifier) ListenerCount(uid int64) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners[uid])
}
