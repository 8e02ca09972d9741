package catalog

import "context"

// MemoryNotifier is an in-process Notifier used by tests.
type MemoryNotifier struct {
	ch  chan struct{}
	Err error // returned by Subscribe when set
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{ch: make(chan struct{}, 1)}
}

func (n *MemoryNotifier) Subscribe(ctx context.Context, table string) (<-chan struct{}, error) {
	if n.Err != nil {
		return nil, n.Err
	}
	return n.ch, nil
}

// Notify emits a single change tick.
func (n *MemoryNotifier) Notify() {
	n.ch <- struct{}{}
}
