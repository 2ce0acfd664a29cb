package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutrifactor/backend/internal/domain"
)

// Debouncer coalesces rapid writes per key with cancel-and-reschedule timer
// semantics: every Schedule for a key cancels the key's pending timer and
// starts a new one, so the write fires once after a quiet period.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	pending  map[string]func()
	timers   map[string]*time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		pending:  make(map[string]func()),
		timers:   make(map[string]*time.Timer),
	}
}

// Schedule registers fn to run after the quiet period, replacing any write
// already pending for the key.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.timers[key]; ok {
		timer.Stop()
	}
	d.pending[key] = fn
	d.timers[key] = time.AfterFunc(d.interval, func() { d.fire(key) })
}

func (d *Debouncer) fire(key string) {
	d.mu.Lock()
	fn, ok := d.pending[key]
	delete(d.pending, key)
	delete(d.timers, key)
	d.mu.Unlock()
	if ok {
		fn()
	}
}

// Flush runs every pending write immediately. It is called on shutdown so
// coalesced writes are not lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fns := make([]func(), 0, len(d.pending))
	for key, fn := range d.pending {
		if timer, ok := d.timers[key]; ok {
			timer.Stop()
		}
		fns = append(fns, fn)
	}
	d.pending = make(map[string]func())
	d.timers = make(map[string]*time.Timer)
	d.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Debounced wraps a Store and coalesces the high-frequency writes (log
// replaces, draft saves, search snapshots) behind a Debouncer. Pending state
// is kept in memory so reads issued before the flush still see the latest
// write; a failed flush is logged and never corrupts the in-memory model,
// it only fails to durably save it.
type Debounced struct {
	inner domain.Store
	deb   *Debouncer
	log   zerolog.Logger

	mu            sync.RWMutex
	pendingLogs   map[string][]domain.LogItem
	pendingDrafts map[string]*string
	pendingSnaps  map[string]*domain.SearchSnapshot
}

// NewDebounced wraps inner with write debouncing at the given quiet period.
func NewDebounced(inner domain.Store, interval time.Duration, logger zerolog.Logger) *Debounced {
	return &Debounced{
		inner:         inner,
		deb:           NewDebouncer(interval),
		log:           logger.With().Str("component", "store.debounce").Logger(),
		pendingLogs:   make(map[string][]domain.LogItem),
		pendingDrafts: make(map[string]*string),
		pendingSnaps:  make(map[string]*domain.SearchSnapshot),
	}
}

// Flush forces every coalesced write through to the inner store.
func (d *Debounced) Flush() {
	d.deb.Flush()
}

func (d *Debounced) ReplaceLog(ctx context.Context, userID string, items []domain.LogItem) error {
	snapshot := make([]domain.LogItem, len(items))
	copy(snapshot, items)

	d.mu.Lock()
	d.pendingLogs[userID] = snapshot
	d.mu.Unlock()

	d.deb.Schedule("log:"+userID, func() {
		d.mu.Lock()
		pending, ok := d.pendingLogs[userID]
		delete(d.pendingLogs, userID)
		d.mu.Unlock()
		if !ok {
			return
		}
		if err := d.inner.ReplaceLog(context.Background(), userID, pending); err != nil {
			d.log.Error().Err(err).Str("user", userID).Msg("log flush failed")
		}
	})
	return nil
}

func (d *Debounced) LoadLog(ctx context.Context, userID string) ([]domain.LogItem, error) {
	d.mu.RLock()
	pending, ok := d.pendingLogs[userID]
	d.mu.RUnlock()
	if ok {
		items := make([]domain.LogItem, len(pending))
		copy(items, pending)
		return items, nil
	}
	return d.inner.LoadLog(ctx, userID)
}

func (d *Debounced) SaveDraft(ctx context.Context, userID, draft string) error {
	d.mu.Lock()
	d.pendingDrafts[userID] = &draft
	d.mu.Unlock()

	d.deb.Schedule("draft:"+userID, func() {
		d.mu.Lock()
		pending, ok := d.pendingDrafts[userID]
		delete(d.pendingDrafts, userID)
		d.mu.Unlock()
		if !ok {
			return
		}
		if err := d.inner.SaveDraft(context.Background(), userID, *pending); err != nil {
			d.log.Error().Err(err).Str("user", userID).Msg("draft flush failed")
		}
	})
	return nil
}

func (d *Debounced) LoadDraft(ctx context.Context, userID string) (string, error) {
	d.mu.RLock()
	pending, ok := d.pendingDrafts[userID]
	d.mu.RUnlock()
	if ok {
		return *pending, nil
	}
	return d.inner.LoadDraft(ctx, userID)
}

func (d *Debounced) SaveSearchSnapshot(ctx context.Context, userID string, snap domain.SearchSnapshot) error {
	d.mu.Lock()
	d.pendingSnaps[userID] = &snap
	d.mu.Unlock()

	d.deb.Schedule("search:"+userID, func() {
		d.mu.Lock()
		pending, ok := d.pendingSnaps[userID]
		delete(d.pendingSnaps, userID)
		d.mu.Unlock()
		if !ok {
			return
		}
		if err := d.inner.SaveSearchSnapshot(context.Background(), userID, *pending); err != nil {
			d.log.Error().Err(err).Str("user", userID).Msg("search snapshot flush failed")
		}
	})
	return nil
}

func (d *Debounced) LoadSearchSnapshot(ctx context.Context, userID string) (*domain.SearchSnapshot, error) {
	d.mu.RLock()
	pending, ok := d.pendingSnaps[userID]
	d.mu.RUnlock()
	if ok {
		snap := *pending
		return &snap, nil
	}
	return d.inner.LoadSearchSnapshot(ctx, userID)
}

// The remaining operations are low-frequency and pass straight through.

func (d *Debounced) SaveCustomFood(ctx context.Context, food domain.CustomFood) error {
	return d.inner.SaveCustomFood(ctx, food)
}

func (d *Debounced) GetCustomFood(ctx context.Context, userID, foodID string) (*domain.CustomFood, error) {
	return d.inner.GetCustomFood(ctx, userID, foodID)
}

func (d *Debounced) ListCustomFoods(ctx context.Context, userID string) ([]domain.CustomFood, error) {
	return d.inner.ListCustomFoods(ctx, userID)
}

func (d *Debounced) DeleteCustomFood(ctx context.Context, userID, foodID string) error {
	return d.inner.DeleteCustomFood(ctx, userID, foodID)
}

func (d *Debounced) PutFavorite(ctx context.Context, mark domain.FavoriteMark) error {
	return d.inner.PutFavorite(ctx, mark)
}

func (d *Debounced) DeleteFavorite(ctx context.Context, mark domain.FavoriteMark) error {
	return d.inner.DeleteFavorite(ctx, mark)
}

func (d *Debounced) ListFavorites(ctx context.Context, userID string) ([]domain.FavoriteMark, error) {
	return d.inner.ListFavorites(ctx, userID)
}

func (d *Debounced) SaveProfile(ctx context.Context, profile domain.Profile) error {
	return d.inner.SaveProfile(ctx, profile)
}

func (d *Debounced) LoadProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return d.inner.LoadProfile(ctx, userID)
}

func (d *Debounced) SaveCredential(ctx context.Context, userID, apiKey string) error {
	return d.inner.SaveCredential(ctx, userID, apiKey)
}

func (d *Debounced) LoadCredential(ctx context.Context, userID string) (string, error) {
	return d.inner.LoadCredential(ctx, userID)
}
