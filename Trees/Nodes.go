package Trees

import (
	"golang.org/x/exp/constraints"
)

type state byte

const (
	free     state = iota // slot on the free list, or the nil sentinel
	detached              // allocated but not in the tree; v is absolute
	anchor                // structurally linked
	member                // in the equal chain of its parent
)

func (s state) String() string {
	switch s {
	case free:
		return "free"
	case detached:
		return "detached"
	case anchor:
		return "anchor"
	case member:
		return "member"
	}
	return "unknown"
}

// A node in the Tree. Index 0 of the arena is the nil sentinel and stays zero.
// Only anchors have l, r and eq. Members have v==0 and p pointing to their anchor.
type info[P constraints.Signed, S constraints.Unsigned] struct {
	v       P // relative to the absolute value of p; absolute when detached
	p, l, r S
	eq      []S // equal chain, ascending by Cmp
	st      state
}

// reroot is the root change reported by a node-level mutation. Nodes don't know
// which of them is the root, so the Tree applies it.
type reroot[S constraints.Unsigned] struct {
	from, to S
	ok       bool
}

// then composes two root changes happening one after another.
func (rr reroot[S]) then(next reroot[S]) reroot[S] {
	if !rr.ok {
		return next
	}
	if next.ok {
		rr.to = next.to
	}
	return rr
}

// base is the node arena and every node-level algorithm. It never reads or writes the root.
type base[T any, P constraints.Signed, S constraints.Unsigned] struct {
	ifs  []info[P, S] // ifs[0] is the nil sentinel
	vs   []T          // vs[i] is the payload of ifs[i]
	free S            // first free slot; the free list is linked through info.l
	//Cmp returns negative number if first sorts before second, 0 if they are indistinguishable,
	//positive number otherwise. Only consulted for nodes that may share a position.
	Cmp    func(T, T) int
	visits int // path nodes touched by the last space-before walk
}

// alloc a detached node holding absolute position pos. Returns 0 when S can't index a new slot.
func (u *base[T, P, S]) alloc(pos P, v T) S {
	if i := u.free; i != 0 {
		u.free = u.ifs[i].l
		u.ifs[i] = info[P, S]{v: pos, st: detached}
		u.vs[i] = v
		return i
	}
	i := S(len(u.ifs))
	if int(i) != len(u.ifs) || i == 0 {
		return 0
	}
	u.ifs = append(u.ifs, info[P, S]{v: pos, st: detached})
	u.vs = append(u.vs, v)
	return i
}

// release a detached slot to the free list.
func (u *base[T, P, S]) release(i S) {
	u.ifs[i] = info[P, S]{l: u.free}
	u.vs[i] = *new(T)
	u.free = i
}

// abs value of node i. Time: O(D)
func (u *base[T, P, S]) abs(i S) (a P) {
	for ; i != 0; i = u.ifs[i].p {
		a += u.ifs[i].v
	}
	return
}

// slot returns the child field of i's parent that holds the anchor i, nil if i has no parent.
func (u *base[T, P, S]) slot(i S) *S {
	p := u.ifs[i].p
	if p == 0 {
		return nil
	}
	if u.ifs[p].l == i {
		return &u.ifs[p].l
	}
	return &u.ifs[p].r
}

// adopt sets p as the parent of c if c exists.
func (u *base[T, P, S]) adopt(p, c S) {
	if c != 0 {
		u.ifs[c].p = p
	}
}

// unlink i from whatever slot it occupies: its parent's child field or its anchor's chain.
// i keeps its own children and chain.
func (u *base[T, P, S]) unlink(i S) {
	n := &u.ifs[i]
	if n.p == 0 {
		return
	}
	if n.st == member {
		a := &u.ifs[n.p]
		for k, m := range a.eq {
			if m == i {
				a.eq = append(a.eq[:k], a.eq[k+1:]...)
				break
			}
		}
	} else if s := u.slot(i); s != nil {
		*s = 0
	}
	n.p = 0
}

// transplant moves anchor a's structural position, children and relative value to x.
// x must already be out of the structure. Chains are left to the caller.
func (u *base[T, P, S]) transplant(a, x S) (rr reroot[S]) {
	if s := u.slot(a); s != nil {
		*s = x
	} else {
		rr = reroot[S]{a, x, true}
	}
	an, xn := &u.ifs[a], &u.ifs[x]
	xn.v, xn.p, xn.l, xn.r, xn.st = an.v, an.p, an.l, an.r, anchor
	u.adopt(x, xn.l)
	u.adopt(x, xn.r)
	an.p, an.l, an.r = 0, 0, 0
	return
}

// group returns the anchor a followed by its chain.
func (u *base[T, P, S]) group(a S) []S {
	eq := u.ifs[a].eq
	g := make([]S, 0, len(eq)+1)
	return append(append(g, a), eq...)
}

// merge two lists ascending by Cmp into one. Fails when two nodes compare equal.
func (u *base[T, P, S]) merge(x, y []S) ([]S, error) {
	out := make([]S, 0, len(x)+len(y))
	for len(x) > 0 && len(y) > 0 {
		if o := u.Cmp(u.vs[x[0]], u.vs[y[0]]); o < 0 {
			out, x = append(out, x[0]), x[1:]
		} else if o > 0 {
			out, y = append(out, y[0]), y[1:]
		} else {
			return nil, ErrDuplicateNode
		}
	}
	return append(append(out, x...), y...), nil
}

// regroup makes the sorted list g one equal group sitting in the structural position of
// anchor a, which must be g's member. g[0] becomes the anchor.
func (u *base[T, P, S]) regroup(a S, g []S) (rr reroot[S]) {
	if g[0] != a {
		rr = u.transplant(a, g[0])
	}
	h := g[0]
	u.ifs[h].eq = append([]S(nil), g[1:]...)
	for _, m := range g[1:] {
		u.ifs[m] = info[P, S]{p: h, st: member}
	}
	return
}

// absorb the sorted, already unlinked nodes in g into the equal group of anchor a.
// Returns the anchor of the merged group.
func (u *base[T, P, S]) absorb(a S, g []S) (S, reroot[S], error) {
	all, err := u.merge(u.group(a), g)
	if err != nil {
		return a, reroot[S]{}, err
	}
	rr := u.regroup(a, all)
	return all[0], rr, nil
}
