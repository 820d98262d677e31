package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
)

type lister interface {
	List(ctx context.Context, filters ListFilters) ([]models.Order, error)
}

type subscriber struct {
	ch      chan []models.Order
	filters ListFilters
}

// Watcher pushes order snapshots to subscribers: once on subscribe, after
// every write the service reports, and on a periodic poll tick as a safety
// net. Snapshots are full lists, so a missed push is corrected by the next.
type Watcher struct {
	source   lister
	logg     *logger.Logger
	interval time.Duration
	buffer   int

	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
	wake   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewWatcher builds a watcher polling at the given interval.
func NewWatcher(source lister, logg *logger.Logger, interval time.Duration, buffer int) (*Watcher, error) {
	if source == nil {
		return nil, fmt.Errorf("order lister required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	if buffer <= 0 {
		buffer = 1
	}
	return &Watcher{
		source:   source,
		logg:     logg,
		interval: interval,
		buffer:   buffer,
		subs:     make(map[int]*subscriber),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Subscribe registers a listener and immediately pushes the current snapshot.
// The returned cancel func releases the slot and closes the channel; calling
// it more than once is safe.
func (w *Watcher) Subscribe(ctx context.Context, filters ListFilters) (<-chan []models.Order, func(), error) {
	snapshot, err := w.source.List(ctx, filters)
	if err != nil {
		return nil, nil, err
	}

	sub := &subscriber{
		ch:      make(chan []models.Order, w.buffer),
		filters: filters,
	}
	// The channel is fresh and buffered, so this send cannot block. The
	// subscriber is registered only afterwards; a concurrent broadcast can
	// never fill the buffer ahead of the initial snapshot.
	sub.ch <- snapshot

	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = sub
	w.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
			close(sub.ch)
		})
	}

	return sub.ch, cancel, nil
}

// Notify schedules an immediate broadcast. Safe to call from any goroutine;
// coalesces with an already pending broadcast.
func (w *Watcher) Notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Run drives the broadcast loop until the context is canceled or Close is
// called.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-w.wake:
		case <-ticker.C:
		}
		w.broadcast(ctx)
	}
}

// Close stops the Run loop.
func (w *Watcher) Close() {
	w.once.Do(func() { close(w.done) })
}

func (w *Watcher) broadcast(ctx context.Context) {
	w.mu.Lock()
	subs := make([]*subscriber, 0, len(w.subs))
	for _, sub := range w.subs {
		subs = append(subs, sub)
	}
	w.mu.Unlock()

	for _, sub := range subs {
		snapshot, err := w.source.List(ctx, sub.filters)
		if err != nil {
			w.logg.Warn(ctx, "order feed refresh failed: "+err.Error())
			continue
		}
		w.push(sub, snapshot)
	}
}

// push delivers the latest snapshot, evicting a stale queued one when the
// subscriber is slow.
func (w *Watcher) push(sub *subscriber, snapshot []models.Order) {
	w.mu.Lock()
	defer w.mu.Unlock()

	alive := false
	for _, s := range w.subs {
		if s == sub {
			alive = true
			break
		}
	}
	if !alive {
		return
	}

	select {
	case sub.ch <- snapshot:
	default:
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- snapshot:
		default:
		}
	}
}
