package tracking

import (
	"slices"

	"github.com/zeusync/skyloop/internal/core/models"
)

// Resolver answers whether a ship ID still refers to a live ship. The entity
// registry implements it.
type Resolver interface {
	Alive(id models.ShipID) bool
}

type forgetEntry[T any] struct {
	countdown int
	cached    T
}

// ForgetTracker keeps the last display state of ships that left view for a
// fixed number of steps. T is whatever the display needs to draw a ship it
// can no longer see.
//
// A ship is tracked only after it was seen: Observe with inView records the
// latest state, and the first Observe out of view turns that state into an
// entry with a full countdown. Tick removes one step from every entry.
type ForgetTracker[T any] struct {
	steps   int
	visible map[models.ShipID]T
	entries map[models.ShipID]*forgetEntry[T]
	order   []models.ShipID
}

func NewForgetTracker[T any](steps int) *ForgetTracker[T] {
	return &ForgetTracker[T]{
		steps:   steps,
		visible: make(map[models.ShipID]T),
		entries: make(map[models.ShipID]*forgetEntry[T]),
	}
}

// Tick decrements every countdown and evicts entries that reach zero. It
// returns the evicted IDs in tracking order.
func (f *ForgetTracker[T]) Tick() []models.ShipID {
	var evicted []models.ShipID
	for _, id := range f.order {
		e := f.entries[id]
		e.countdown--
		if e.countdown <= 0 {
			delete(f.entries, id)
			evicted = append(evicted, id)
		}
	}
	if len(evicted) > 0 {
		f.order = slices.DeleteFunc(f.order, func(id models.ShipID) bool {
			_, ok := f.entries[id]
			return !ok
		})
	}
	return evicted
}

// Observe reports whether a ship is in view this step. In view, snapshot
// becomes the state to remember and any countdown is cancelled. Out of view,
// a ship seen last step starts a countdown from that remembered state.
func (f *ForgetTracker[T]) Observe(id models.ShipID, inView bool, snapshot T) {
	if inView {
		f.visible[id] = snapshot
		f.remove(id)
		return
	}
	last, wasVisible := f.visible[id]
	if !wasVisible {
		return
	}
	delete(f.visible, id)
	if f.steps <= 0 {
		return
	}
	if _, tracked := f.entries[id]; !tracked {
		f.order = append(f.order, id)
	}
	f.entries[id] = &forgetEntry[T]{countdown: f.steps, cached: last}
}

// Prune drops every entry whose ship is gone.
func (f *ForgetTracker[T]) Prune(r Resolver) int {
	for id := range f.visible {
		if !r.Alive(id) {
			delete(f.visible, id)
		}
	}
	before := len(f.order)
	f.order = slices.DeleteFunc(f.order, func(id models.ShipID) bool {
		if r.Alive(id) {
			return false
		}
		delete(f.entries, id)
		return true
	})
	return before - len(f.order)
}

// Countdown returns the steps an entry has left.
func (f *ForgetTracker[T]) Countdown(id models.ShipID) (int, bool) {
	e, ok := f.entries[id]
	if !ok {
		return 0, false
	}
	return e.countdown, true
}

// Each visits tracked entries in the order they started.
func (f *ForgetTracker[T]) Each(fn func(id models.ShipID, cached T)) {
	for _, id := range f.order {
		fn(id, f.entries[id].cached)
	}
}

func (f *ForgetTracker[T]) Len() int { return len(f.order) }

func (f *ForgetTracker[T]) Reset() {
	clear(f.visible)
	clear(f.entries)
	f.order = f.order[:0]
}

func (f *ForgetTracker[T]) remove(id models.ShipID) {
	if _, ok := f.entries[id]; !ok {
		return
	}
	delete(f.entries, id)
	f.order = slices.DeleteFunc(f.order, func(other models.ShipID) bool { return other == id })
}
