// Package arena provides an owning store with generational indexes.
//
// An Index is a (slot, generation) pair. Killing an entry only marks it dead;
// Reap frees dead slots and bumps their generation, which invalidates every
// outstanding Index to them. Slots are recycled lowest-first.
package arena

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrStale is returned when an Index no longer refers to a live slot.
var ErrStale = errors.New("arena: stale index")

// Index refers to an entry of an Arena[T]. The zero Index never resolves.
type Index[T any] struct {
	slot uint32
	gen  uint32
}

// Slot returns the slot number.
func (i Index[T]) Slot() int { return int(i.slot) }

// Gen returns the generation the index was issued with.
func (i Index[T]) Gen() uint32 { return i.gen }

// IsZero reports whether i is the zero Index.
func (i Index[T]) IsZero() bool { return i.gen == 0 }

func (i Index[T]) String() string {
	return fmt.Sprintf("#%d.%d", i.slot, i.gen)
}

type state uint8

const (
	stateFree state = iota
	stateLive
	statePending // spawned during iteration
	stateDead    // killed, awaiting reap
)

type entry[T any] struct {
	value T
	gen   uint32
	state state
}

// Arena owns values of type T. It is not safe for concurrent use.
type Arena[T any] struct {
	entries   []*entry[T]
	free      []uint32 // sorted ascending
	pending   []uint32
	iterating int
}

// New returns an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Spawn stores v and returns its index. The lowest free slot is reused
// before the arena grows. Values spawned while an iteration is running are
// resolvable right away but are only visited by later iterations.
func (a *Arena[T]) Spawn(v T) Index[T] {
	var slot uint32
	var e *entry[T]
	if len(a.free) > 0 {
		slot = a.free[0]
		a.free = a.free[1:]
		e = a.entries[slot]
	} else {
		slot = uint32(len(a.entries))
		e = &entry[T]{gen: 1}
		a.entries = append(a.entries, e)
	}

	e.value = v
	if a.iterating > 0 {
		e.state = statePending
		a.pending = append(a.pending, slot)
	} else {
		e.state = stateLive
	}
	return Index[T]{slot: slot, gen: e.gen}
}

func (a *Arena[T]) lookup(idx Index[T]) (*entry[T], bool) {
	if idx.gen == 0 || int(idx.slot) >= len(a.entries) {
		return nil, false
	}
	e := a.entries[idx.slot]
	if e.gen != idx.gen || e.state == stateFree {
		return nil, false
	}
	return e, true
}

// Get resolves idx. An entry killed this frame stays readable until Reap.
func (a *Arena[T]) Get(idx Index[T]) (*T, error) {
	e, ok := a.lookup(idx)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrStale, idx)
	}
	return &e.value, nil
}

// MustGet resolves idx and panics if it is stale.
func (a *Arena[T]) MustGet(idx Index[T]) *T {
	v, err := a.Get(idx)
	if err != nil {
		panic(err)
	}
	return v
}

// Alive reports whether idx refers to an entry that has not been killed.
func (a *Arena[T]) Alive(idx Index[T]) bool {
	e, ok := a.lookup(idx)
	return ok && (e.state == stateLive || e.state == statePending)
}

// Kill marks the entry dead. Its slot is recycled by the next Reap.
// Killing an already dead entry is a no-op.
func (a *Arena[T]) Kill(idx Index[T]) error {
	e, ok := a.lookup(idx)
	if !ok {
		return fmt.Errorf("%w: %v", ErrStale, idx)
	}
	e.state = stateDead
	return nil
}

// KillAll marks every entry dead.
func (a *Arena[T]) KillAll() {
	for _, e := range a.entries {
		if e.state == stateLive || e.state == statePending {
			e.state = stateDead
		}
	}
}

// Reap frees all dead slots and bumps their generations.
// Panics if called during an iteration.
func (a *Arena[T]) Reap() int {
	if a.iterating > 0 {
		panic("arena: Reap called during iteration")
	}
	a.commit()

	var zero T
	n := 0
	for slot, e := range a.entries {
		if e.state != stateDead {
			continue
		}
		e.value = zero
		e.state = stateFree
		e.gen++
		if e.gen == 0 {
			e.gen = 1
		}
		pos, _ := slices.BinarySearch(a.free, uint32(slot))
		a.free = slices.Insert(a.free, pos, uint32(slot))
		n++
	}
	return n
}

// All yields live entries in slot order. Entries killed during the pass are
// skipped once reached. Spawns made during the pass are not visited.
func (a *Arena[T]) All() iter.Seq2[Index[T], *T] {
	return func(yield func(Index[T], *T) bool) {
		a.iterating++
		defer a.endIteration()

		for slot := 0; slot < len(a.entries); slot++ {
			e := a.entries[slot]
			if e.state != stateLive {
				continue
			}
			if !yield(Index[T]{slot: uint32(slot), gen: e.gen}, &e.value) {
				return
			}
		}
	}
}

func (a *Arena[T]) endIteration() {
	a.iterating--
	if a.iterating == 0 {
		a.commit()
	}
}

func (a *Arena[T]) commit() {
	for _, slot := range a.pending {
		if e := a.entries[slot]; e.state == statePending {
			e.state = stateLive
		}
	}
	a.pending = a.pending[:0]
}

// Len returns the number of entries that have not been killed.
func (a *Arena[T]) Len() int {
	n := 0
	for _, e := range a.entries {
		if e.state == stateLive || e.state == statePending {
			n++
		}
	}
	return n
}
