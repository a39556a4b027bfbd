package connectivity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/connectivity"
)

func TestDefaultsOffline(t *testing.T) {
	m := connectivity.NewMonitor("http://localhost:0", nil)
	assert.False(t, m.IsOnline(), "monitor must start offline until a check")
}

func TestSetNotifiesOnTransitionOnly(t *testing.T) {
	m := connectivity.NewMonitor("http://localhost:0", nil)
	l := m.Subscribe()
	defer m.Unsubscribe(l)

	m.Set(true)

	select {
	case online := <-l.C:
		assert.True(t, online)
	case <-time.After(time.Second):
		t.Fatal("no notification on offline->online transition")
	}

	// same state again, no event
	m.Set(true)
	select {
	case <-l.C:
		t.Fatal("unexpected notification without a transition")
	case <-time.After(100 * time.Millisecond):
	}

	m.Set(false)
	select {
	case online := <-l.C:
		assert.False(t, online)
	case <-time.After(time.Second):
		t.Fatal("no notification on online->offline transition")
	}
}

func TestProbe(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	m := connectivity.NewMonitor(ts.URL, ts.Client())
	assert.True(t, m.Probe(context.Background()), "wrong probe result")
	assert.True(t, m.IsOnline())

	ts.Close()
	assert.False(t, m.Probe(context.Background()), "probe against a dead endpoint must report offline")
	assert.False(t, m.IsOnline())
}
