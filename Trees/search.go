package Trees

import (
	"github.com/g-m-twostay/postree/Ranges"
)

// Buckets is the result of a range search. Lesser holds the closest nodes below the range,
// Greater the closest nodes above it, Inside every node in the range in in-order.
// Lesser and Greater only keep the tightest boundary found; nodes tied on it are all kept.
type Buckets[S any] struct {
	Lesser, Inside, Greater []S
}

// bucket is the closest candidate group on one side of a range.
type bucket[K any, S any] struct {
	key K
	set []S
	up  bool // candidates with larger keys are closer
}

func (b *bucket[K, S]) offer(k K, c func(K, K) int, ns ...S) {
	if len(b.set) == 0 {
		b.key, b.set = k, append(b.set, ns...)
		return
	}
	o := c(k, b.key)
	if !b.up {
		o = -o
	}
	if o > 0 {
		b.key, b.set = k, append(b.set[:0], ns...)
	} else if o == 0 {
		b.set = append(b.set, ns...)
	}
}

// search the subtree rooted at i by absolute value. at is the absolute value of i's parent;
// r has had the same offset pushed. Recursive.
func (u *base[T, P, S]) search(i S, at P, r Ranges.Offsetter[P], lo, hi *bucket[P, S], in *[]S) {
	if i == 0 {
		return
	}
	n := &u.ifs[i]
	at += n.v
	c := r.Classify(n.v)
	r.Push(n.v)
	switch c {
	case Ranges.Below:
		lo.offer(at, r.Compare, u.group(i)...)
		u.search(n.r, at, r, lo, hi, in)
	case Ranges.Above:
		hi.offer(at, r.Compare, u.group(i)...)
		u.search(n.l, at, r, lo, hi, in)
	default:
		u.search(n.l, at, r, lo, hi, in)
		*in = append(append(*in, i), n.eq...)
		u.search(n.r, at, r, lo, hi, in)
	}
	r.Pop()
}

// prefSearch the subtree rooted at i by payload. Every node of a group is classified on its
// own since the caller's order tells them apart. Recursive.
func (u *base[T, P, S]) prefSearch(i S, r Ranges.Classifier[T], lo, hi *bucket[T, S], in *[]S) {
	if i == 0 {
		return
	}
	n := &u.ifs[i]
	if r.Classify(u.vs[i]) != Ranges.Below {
		u.prefSearch(n.l, r, lo, hi, in)
	}
	last := Ranges.Below
	for _, m := range u.group(i) {
		switch last = r.Classify(u.vs[m]); last {
		case Ranges.Below:
			lo.offer(u.vs[m], r.Compare, m)
		case Ranges.Above:
			hi.offer(u.vs[m], r.Compare, m)
		default:
			*in = append(*in, m)
		}
	}
	if last != Ranges.Above {
		u.prefSearch(n.r, r, lo, hi, in)
	}
}

// ceiling is the first anchor at or after absolute position pos in the tree rooted at root.
// Time: O(D); Space: O(1)
func (u *base[T, P, S]) ceiling(root S, pos P) (best S) {
	var at P
	for i := root; i != 0; {
		if at += u.ifs[i].v; at >= pos {
			best, i = i, u.ifs[i].l
		} else {
			i = u.ifs[i].r
		}
	}
	return
}
