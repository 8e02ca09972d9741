package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"listing-checkout/internal/model"
)

// PlanSource loads the full plan table from the backing store.
type PlanSource interface {
	List(ctx context.Context) ([]*model.Plan, error)
}

// Notifier delivers change notifications for a table. The returned channel
// is closed when the subscription ends; notifications carry no payload, a
// tick means "something changed, reload".
type Notifier interface {
	Subscribe(ctx context.Context, table string) (<-chan struct{}, error)
}

// Watcher keeps a live local copy of the plan catalog. A single background
// goroutine is the only writer; readers take immutable snapshots. Each
// notification replaces the copy wholesale, last write wins. If the
// subscription cannot be established the snapshot stays empty and the
// caller sees an empty catalog, never an error.
type Watcher struct {
	source   PlanSource
	notifier Notifier
	log      *zap.Logger

	mu    sync.RWMutex
	plans []*model.Plan
}

func NewWatcher(source PlanSource, notifier Notifier, log *zap.Logger) *Watcher {
	return &Watcher{
		source:   source,
		notifier: notifier,
		log:      log,
	}
}

// Start subscribes to change notifications for the plan table and begins
// watching. Cancelling ctx detaches the listener; no explicit unsubscribe
// is needed.
func (w *Watcher) Start(ctx context.Context) {
	changes, err := w.notifier.Subscribe(ctx, model.Plan{}.TableName())
	if err != nil {
		w.log.Warn("catalog subscription unavailable, serving empty catalog", zap.Error(err))
		return
	}

	w.reload(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				w.reload(ctx)
			}
		}
	}()
}

// Snapshot returns the current catalog copy. The returned slice is owned
// by the caller and never mutated by the watcher.
func (w *Watcher) Snapshot() []*model.Plan {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*model.Plan, len(w.plans))
	copy(out, w.plans)
	return out
}

func (w *Watcher) reload(ctx context.Context) {
	plans, err := w.source.List(ctx)
	if err != nil {
		w.log.Warn("catalog reload failed, keeping previous snapshot", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.plans = plans
	w.mu.Unlock()

	w.log.Debug("catalog snapshot replaced", zap.Int("plans", len(plans)))
}
