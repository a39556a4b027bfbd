// Package connectivity tracks network reachability as a single boolean signal
// the sync engine and UI layers react to.
package connectivity

import (
	"context"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "connectivity")
}

// Monitor holds the current online state and notifies listeners on every
// transition. A freshly constructed monitor reports offline until the first
// Probe or Set; the signal is never undefined.
type Monitor struct {
	probeURL   string
	httpClient *http.Client

	mu        sync.Mutex
	online    bool
	listeners map[*Listener]struct{}
}

// Listener receives the new online state on every transition.
type Listener struct {
	C chan bool
}

func NewMonitor(probeURL string, httpClient *http.Client) *Monitor {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Monitor{
		probeURL:   probeURL,
		httpClient: httpClient,
		listeners:  map[*Listener]struct{}{},
	}
}

// IsOnline returns the last established reachability state.
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Set records a platform online/offline signal. Listeners are notified only
// when the state actually changes.
func (m *Monitor) Set(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.online == online {
		return
	}
	m.online = online
	log.WithField("online", online).Info("connectivity changed")

	for l := range m.listeners {
		select {
		case l.C <- online:
		default:
		}
	}
}

// Subscribe registers a transition listener.
func (m *Monitor) Subscribe() *Listener {
	l := &Listener{C: make(chan bool, 1)}

	m.mu.Lock()
	m.listeners[l] = struct{}{}
	m.mu.Unlock()

	return l
}

func (m *Monitor) Unsubscribe(l *Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.listeners[l]; !ok {
		return
	}
	delete(m.listeners, l)
	close(l.C)
}

// Probe checks reachability with one HEAD request against the configured
// endpoint, records the outcome and returns it. Any transport error counts as
// offline.
func (m *Monitor) Probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.probeURL, nil)
	if err != nil {
		m.Set(false)
		return false
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.Set(false)
		return false
	}
	resp.Body.Close()

	m.Set(true)
	return true
}
