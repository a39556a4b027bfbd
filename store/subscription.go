package store

type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeSynced  ChangeType = "synced"
)

// Change describes one committed mutation. Observers re-query the store on
// receipt, so the payload only carries what changed, not row contents.
type Change struct {
	Type ChangeType `json:"type"`
	IDs  []string   `json:"ids"`
}

// Subscription is a live feed of store changes. Receive from C until
// Unsubscribe, which closes it.
type Subscription struct {
	C chan Change
}

// Subscribe registers a listener notified after every committed mutation.
func (s *MaaSathiStore) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 1
	}
	sub := &Subscription{C: make(chan Change, buffer)}

	s.mu.Lock()
	s.subscribers[sub] = struct{}{}
	s.mu.Unlock()

	return sub
}

func (s *MaaSathiStore) Unsubscribe(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[sub]; !ok {
		return
	}
	delete(s.subscribers, sub)
	close(sub.C)
}

// notify fans a change out to every subscriber. The send never blocks a store
// write: a subscriber with a full buffer already holds an undelivered change
// signal, which is enough to trigger its re-query.
func (s *MaaSathiStore) notify(change Change) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sub := range s.subscribers {
		select {
		case sub.C <- change:
		default:
		}
	}
}
