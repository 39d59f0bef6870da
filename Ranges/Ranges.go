// Package Ranges classifies values against a target range. Trees uses it to steer its range
// searches: a value is Below, Inside or Above the range, and two values can be compared to keep
// the closest candidates on either side.
package Ranges

import (
	"cmp"
	"errors"

	"golang.org/x/exp/constraints"
)

// ErrInvertedRange is returned when a range is built with its low end above its high end.
var ErrInvertedRange = errors.New("Ranges: inverted range")

// Class of a value relative to a range.
type Class int8

const (
	Below Class = iota - 1
	Inside
	Above
)

func (c Class) String() string {
	switch c {
	case Below:
		return "below"
	case Inside:
		return "inside"
	case Above:
		return "above"
	}
	return "unknown"
}

// Classifier places values of type V against a range. Compare orders two values the same way the
// range does: negative if a<b, 0 if equal, positive if a>b.
type Classifier[V any] interface {
	Classify(v V) Class
	Compare(a, b V) int
}

// Offsetter is a Classifier over positions that can be evaluated against relative values.
// After Push(d), Classify(v) classifies v+d+(earlier pushes); Pop undoes the latest Push.
type Offsetter[P constraints.Signed] interface {
	Classifier[P]
	Push(d P)
	Pop()
}

// Numeric is the closed range [Lo, Hi] over positions with a stack of running offsets.
type Numeric[P constraints.Signed] struct {
	Lo, Hi P
	off    P
	st     []P
}

// NewNumeric range [lo, hi].
func NewNumeric[P constraints.Signed](lo, hi P) (*Numeric[P], error) {
	if lo > hi {
		return nil, ErrInvertedRange
	}
	return &Numeric[P]{Lo: lo, Hi: hi}, nil
}

// Point range [p, p].
func Point[P constraints.Signed](p P) *Numeric[P] {
	return &Numeric[P]{Lo: p, Hi: p}
}

func (u *Numeric[P]) Classify(v P) Class {
	if v += u.off; v < u.Lo {
		return Below
	} else if v > u.Hi {
		return Above
	}
	return Inside
}

func (u *Numeric[P]) Compare(a, b P) int {
	return cmp.Compare(a, b)
}

func (u *Numeric[P]) Push(d P) {
	u.st = append(u.st, d)
	u.off += d
}

func (u *Numeric[P]) Pop() {
	if n := len(u.st); n > 0 {
		u.off -= u.st[n-1]
		u.st = u.st[:n-1]
	}
}

// Offset currently applied to classified values.
func (u *Numeric[P]) Offset() P {
	return u.off
}

// Pref is the closed range [Lo, Hi] over values ordered by Cmp.
type Pref[T any] struct {
	Lo, Hi T
	Cmp    func(T, T) int
}

// NewPref range [lo, hi] under c.
func NewPref[T any](lo, hi T, c func(T, T) int) (*Pref[T], error) {
	if c(lo, hi) > 0 {
		return nil, ErrInvertedRange
	}
	return &Pref[T]{lo, hi, c}, nil
}

func (u *Pref[T]) Classify(v T) Class {
	if u.Cmp(v, u.Lo) < 0 {
		return Below
	} else if u.Cmp(v, u.Hi) > 0 {
		return Above
	}
	return Inside
}

func (u *Pref[T]) Compare(a, b T) int {
	return u.Cmp(a, b)
}
