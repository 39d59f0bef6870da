// Package Sequence tracks keyed markers in a text-like sequence. Markers keep their place
// relative to the text around them: inserting text before a marker moves it forward, deleting
// text before it moves it back, and deleting the text it sits in collapses it onto the start of
// the deletion. Every edit costs time proportional to the depth of the underlying Trees.Tree,
// not to the number of markers that move.
//
// Markers at the same position are ordered by when they were marked.
package Sequence

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/cornelk/hashmap"
	"github.com/g-m-twostay/postree/Ranges"
	"github.com/g-m-twostay/postree/Trees"
	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
)

var (
	ErrKeyExists      = errors.New("Sequence: key already marked")
	ErrNoKey          = errors.New("Sequence: key not marked")
	ErrNegativeLength = errors.New("Sequence: negative length")
)

// Key of a marker.
type Key interface {
	constraints.Integer | ~string
}

type entry[K Key, T any] struct {
	key K
	seq uint64
	v   T
}

func bySeq[K Key, T any](a, b entry[K, T]) int {
	return cmp.Compare(a.seq, b.seq)
}

// Sequence of markers. Not safe for concurrent use.
type Sequence[K Key, T any] struct {
	tree  *Trees.Tree[entry[K, T], int, uint32]
	index *hashmap.Map[K, uint32]
	seq   uint64
	log   zerolog.Logger
}

// New empty Sequence.
func New[K Key, T any](opts ...Option) *Sequence[K, T] {
	c := config{log: zerolog.Nop()}
	for _, o := range opts {
		o(&c)
	}
	return &Sequence[K, T]{
		tree:  Trees.New[entry[K, T], int, uint32](bySeq[K, T], Trees.WithHint(c.hint), Trees.WithLogger(c.log.With().Str("component", "tree").Logger())),
		index: hashmap.NewSized[K, uint32](uintptr(max(c.hint, 1))),
		log:   c.log,
	}
}

// Mark places a new marker key at pos holding v. It goes after every marker already at pos.
func (u *Sequence[K, T]) Mark(key K, pos int, v T) error {
	if _, ok := u.index.Get(key); ok {
		return fmt.Errorf("Sequence: mark %v: %w", key, ErrKeyExists)
	}
	u.seq++
	h, err := u.tree.Insert(pos, entry[K, T]{key, u.seq, v})
	if err != nil {
		return fmt.Errorf("Sequence: mark %v at %d: %w", key, pos, err)
	}
	u.index.Set(key, h)
	return nil
}

// Unmark removes the marker key, returning its value.
func (u *Sequence[K, T]) Unmark(key K) (v T, err error) {
	h, ok := u.index.Get(key)
	if !ok {
		return v, fmt.Errorf("Sequence: unmark %v: %w", key, ErrNoKey)
	}
	if err = u.tree.RemoveNode(h); err != nil {
		return v, fmt.Errorf("Sequence: unmark %v: %w", key, err)
	}
	v = u.tree.Get(h).v
	u.index.Del(key)
	return v, u.tree.Free(h)
}

// Position of the marker key.
// Time: O(D)
func (u *Sequence[K, T]) Position(key K) (int, bool) {
	h, ok := u.index.Get(key)
	if !ok {
		return 0, false
	}
	return u.tree.Abs(h), true
}

// Value held by the marker key.
func (u *Sequence[K, T]) Value(key K) (v T, ok bool) {
	h, ok := u.index.Get(key)
	if !ok {
		return v, false
	}
	return u.tree.Get(h).v, true
}

// Len is the number of markers.
func (u *Sequence[K, T]) Len() int {
	return u.tree.Size()
}

// InsertText of length n at pos: every marker at or after pos moves forward by n.
// Time: O(D)
func (u *Sequence[K, T]) InsertText(pos, n int) error {
	if n < 0 {
		return fmt.Errorf("Sequence: insert %d at %d: %w", n, pos, ErrNegativeLength)
	}
	if n == 0 {
		return nil
	}
	h := u.tree.Ceiling(pos)
	if h == 0 {
		return nil
	}
	if err := u.tree.AddSpaceBefore(h, n); err != nil {
		return fmt.Errorf("Sequence: insert %d at %d: %w", n, pos, err)
	}
	u.log.Debug().Int("pos", pos).Int("len", n).Msg("text inserted")
	return nil
}

// DeleteText of length n starting at pos: markers strictly inside the deleted text collapse onto
// pos, keeping their order, and markers at or after pos+n move back by n.
// Time: O(D + k*D) for k collapsed markers.
func (u *Sequence[K, T]) DeleteText(pos, n int) error {
	if n < 0 {
		return fmt.Errorf("Sequence: delete %d at %d: %w", n, pos, ErrNegativeLength)
	}
	if n == 0 {
		return nil
	}
	collapsed := 0
	if n > 1 {
		r, err := Ranges.NewNumeric(pos+1, pos+n-1)
		if err != nil {
			return err
		}
		for _, h := range u.tree.Search(r).Inside {
			if err = u.move(h, pos); err != nil {
				return fmt.Errorf("Sequence: delete %d at %d: %w", n, pos, err)
			}
			collapsed++
		}
	}
	if h := u.tree.Ceiling(pos + n); h != 0 {
		if err := u.tree.AddSpaceBefore(h, -n); err != nil {
			return fmt.Errorf("Sequence: delete %d at %d: %w", n, pos, err)
		}
	}
	u.log.Debug().Int("pos", pos).Int("len", n).Int("collapsed", collapsed).Msg("text deleted")
	return nil
}

// move the node h to pos through removal and insertion. Its key may end up on a new handle.
func (u *Sequence[K, T]) move(h uint32, pos int) error {
	e := *u.tree.Get(h)
	if err := u.tree.RemoveNode(h); err != nil {
		return err
	}
	if err := u.tree.Free(h); err != nil {
		return err
	}
	h, err := u.tree.Insert(pos, e)
	if err != nil {
		u.index.Del(e.key)
		return err
	}
	u.index.Set(e.key, h)
	return nil
}

// Between returns the keys of the markers in [lo, hi], in order.
// Time: O(D + k) for k markers in the range.
func (u *Sequence[K, T]) Between(lo, hi int) []K {
	r, err := Ranges.NewNumeric(lo, hi)
	if err != nil {
		return nil
	}
	in := u.tree.Search(r).Inside
	ks := make([]K, len(in))
	for i, h := range in {
		ks[i] = u.tree.Get(h).key
	}
	return ks
}

// Range calls f on every marker in order until f returns false.
func (u *Sequence[K, T]) Range(f func(key K, pos int, v T) bool) {
	u.tree.Range(func(h uint32) bool {
		e := u.tree.Get(h)
		return f(e.key, u.tree.Abs(h), e.v)
	})
}

// Check verifies the structure underneath the markers and that every key resolves to a marker.
func (u *Sequence[K, T]) Check() error {
	if err := u.tree.SelfTest(); err != nil {
		return err
	}
	if n := u.index.Len(); n != u.tree.Size() {
		return fmt.Errorf("Sequence: %d keys for %d markers", n, u.tree.Size())
	}
	var err error
	u.index.Range(func(k K, h uint32) bool {
		if !u.tree.Attached(h) || u.tree.Get(h).key != k {
			err = fmt.Errorf("Sequence: key %v points at node %d", k, h)
		}
		return err == nil
	})
	return err
}
