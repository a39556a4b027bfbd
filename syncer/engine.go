// Package syncer reconciles locally captured assessments with the remote
// store once connectivity and an authenticated session are available.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/connectivity"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/external/remote"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/external/session"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/schema"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "syncer")
}

var (
	ErrNoConnection     = errors.New("no internet connection")
	ErrNotAuthenticated = errors.New("not authenticated, please log in to sync")
	ErrSyncInProgress   = errors.New("a sync is already running")
)

// SyncFailedError reports a batch that the remote store did not confirm. No
// local row was marked synced, so retrying resubmits the same batch.
type SyncFailedError struct {
	Reason string
	Err    error
}

func (e *SyncFailedError) Error() string {
	return fmt.Sprintf("sync failed: %s", e.Reason)
}

func (e *SyncFailedError) Unwrap() error {
	return e.Err
}

// Engine drains unsynced assessments to the remote store. SyncData runs are
// serialized internally; a second caller gets ErrSyncInProgress instead of
// racing the mark-synced step.
type Engine struct {
	store    store.MaaSathiCore
	remote   remote.Remote
	sessions session.Provider
	network  *connectivity.Monitor

	running int32
}

func NewEngine(s store.MaaSathiCore, r remote.Remote, p session.Provider, m *connectivity.Monitor) *Engine {
	return &Engine{
		store:    s,
		remote:   r,
		sessions: p,
		network:  m,
	}
}

// SyncData submits every unsynced local assessment to the remote store as one
// idempotent batch upsert and marks the batch synced only after the remote
// confirmation. Returns the number of records submitted; zero with a nil
// error means there was nothing to sync.
func (e *Engine) SyncData(ctx context.Context) (int, error) {
	if !atomic.CompareAndSwapInt32(&e.running, 0, 1) {
		return 0, ErrSyncInProgress
	}
	defer atomic.StoreInt32(&e.running, 0)

	// fast local checks, no network attempt
	if !e.network.IsOnline() {
		return 0, ErrNoConnection
	}

	sess, err := e.sessions.CurrentSession()
	if err != nil {
		return 0, ErrNotAuthenticated
	}
	if sess == nil {
		return 0, ErrNotAuthenticated
	}

	unsynced, err := e.store.ListUnsynced()
	if err != nil {
		return 0, &SyncFailedError{Reason: err.Error(), Err: err}
	}
	if len(unsynced) == 0 {
		return 0, nil
	}

	records := make([]schema.RemoteAssessment, 0, len(unsynced))
	ids := make([]string, 0, len(unsynced))
	for _, a := range unsynced {
		records = append(records, a.RemoteRecord(sess.UserID))
		ids = append(ids, a.ID)
	}

	if err := e.remote.UpsertAssessments(ctx, sess.AccessToken, records); err != nil {
		log.WithError(err).Warn("remote upsert failed, batch stays unsynced")
		return 0, &SyncFailedError{Reason: err.Error(), Err: err}
	}

	// strictly after remote confirmation
	if err := e.store.MarkSynced(ids); err != nil {
		// The remote accepted the batch but the local flip failed. The rows
		// stay unsynced and the next run resubmits them, which the upsert key
		// absorbs.
		log.WithError(err).Error("mark synced failed after remote confirmation")
		return 0, &SyncFailedError{Reason: err.Error(), Err: err}
	}

	log.WithField("count", len(records)).Info("synced assessments")
	return len(records), nil
}

// Run triggers a sync whenever connectivity flips to online, until the
// context is cancelled. Failures are logged and left for the next transition
// or a manual trigger; the records stay visibly unsynced either way.
func (e *Engine) Run(ctx context.Context) {
	l := e.network.Subscribe()
	defer e.network.Unsubscribe(l)

	for {
		select {
		case online, ok := <-l.C:
			if !ok {
				return
			}
			if !online {
				continue
			}
			if _, err := e.SyncData(ctx); err != nil && !errors.Is(err, ErrSyncInProgress) {
				log.WithError(err).Warn("background sync attempt failed")
			}
		case <-ctx.Done():
			return
		}
	}
}
