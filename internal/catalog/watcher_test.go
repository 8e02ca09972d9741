package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"listing-checkout/internal/model"
)

type fakeSource struct {
	mu    sync.Mutex
	plans []*model.Plan
	err   error
}

func (s *fakeSource) List(ctx context.Context) ([]*model.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plans, s.err
}

func (s *fakeSource) set(plans []*model.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = plans
}

func waitForPlans(t *testing.T, w *Watcher, want int) []*model.Plan {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := w.Snapshot(); len(snap) == want {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("snapshot never reached %d plans", want)
	return nil
}

func TestWatcher_InitialSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &fakeSource{plans: []*model.Plan{{ID: "gratis"}, {ID: "premium", BasePrice: 500}}}
	w := NewWatcher(source, NewMemoryNotifier(), zap.NewNop())
	w.Start(ctx)

	snap := waitForPlans(t, w, 2)
	if snap[0].ID != "gratis" {
		t.Fatalf("snapshot[0] = %q, want gratis", snap[0].ID)
	}
}

func TestWatcher_ReplacesSnapshotOnNotify(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &fakeSource{plans: []*model.Plan{{ID: "gratis"}}}
	notifier := NewMemoryNotifier()
	w := NewWatcher(source, notifier, zap.NewNop())
	w.Start(ctx)
	waitForPlans(t, w, 1)

	source.set([]*model.Plan{{ID: "gratis"}, {ID: "basico"}, {ID: "premium"}})
	notifier.Notify()

	snap := waitForPlans(t, w, 3)
	if snap[2].ID != "premium" {
		t.Fatalf("snapshot[2] = %q, want premium", snap[2].ID)
	}
}

func TestWatcher_SubscribeFailureLeavesCatalogEmpty(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &fakeSource{plans: []*model.Plan{{ID: "gratis"}}}
	notifier := NewMemoryNotifier()
	notifier.Err = errors.New("broker unreachable")

	w := NewWatcher(source, notifier, zap.NewNop())
	w.Start(ctx)

	if snap := w.Snapshot(); len(snap) != 0 {
		t.Fatalf("expected empty snapshot, got %d plans", len(snap))
	}
}

func TestWatcher_ReloadErrorKeepsPreviousSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &fakeSource{plans: []*model.Plan{{ID: "gratis"}}}
	notifier := NewMemoryNotifier()
	w := NewWatcher(source, notifier, zap.NewNop())
	w.Start(ctx)
	waitForPlans(t, w, 1)

	source.mu.Lock()
	source.err = errors.New("store down")
	source.mu.Unlock()
	notifier.Notify()

	// Give the watcher a moment to process the tick.
	time.Sleep(50 * time.Millisecond)
	if snap := w.Snapshot(); len(snap) != 1 || snap[0].ID != "gratis" {
		t.Fatalf("expected previous snapshot to survive, got %v", snap)
	}
}
