package Trees

import (
	"golang.org/x/exp/constraints"
)

// smallest anchor in the subtree rooted at i. Chains are ignored.
// Time: O(D); Space: O(1)
func (u *base[T, P, S]) smallest(i S) S {
	for i != 0 && u.ifs[i].l != 0 {
		i = u.ifs[i].l
	}
	return i
}

// largest anchor in the subtree rooted at i. Chains are ignored.
func (u *base[T, P, S]) largest(i S) S {
	for i != 0 && u.ifs[i].r != 0 {
		i = u.ifs[i].r
	}
	return i
}

// last node of the group anchored at a.
func (u *base[T, P, S]) last(a S) S {
	if eq := u.ifs[a].eq; len(eq) > 0 {
		return eq[len(eq)-1]
	}
	return a
}

// nextAnchor is the structural in-order successor of anchor i, skipping chains.
func (u *base[T, P, S]) nextAnchor(i S) S {
	if r := u.ifs[i].r; r != 0 {
		return u.smallest(r)
	}
	p := u.ifs[i].p
	for p != 0 && u.ifs[p].r == i {
		i, p = p, u.ifs[p].p
	}
	return p
}

// prevAnchor is the structural in-order predecessor of anchor i, skipping chains.
func (u *base[T, P, S]) prevAnchor(i S) S {
	if l := u.ifs[i].l; l != 0 {
		return u.largest(l)
	}
	p := u.ifs[i].p
	for p != 0 && u.ifs[p].l == i {
		i, p = p, u.ifs[p].p
	}
	return p
}

// successor of i in in-order: chain members follow their anchor in chain order.
// Time: O(D + length of the equal chain); Space: O(1)
func (u *base[T, P, S]) successor(i S) S {
	n := &u.ifs[i]
	if n.st == member {
		eq := u.ifs[n.p].eq
		for k, m := range eq {
			if m == i {
				if k+1 < len(eq) {
					return eq[k+1]
				}
				break
			}
		}
		return u.nextAnchor(n.p)
	}
	if len(n.eq) > 0 {
		return n.eq[0]
	}
	return u.nextAnchor(i)
}

// predecessor of i in in-order, the mirror of successor.
func (u *base[T, P, S]) predecessor(i S) S {
	n := &u.ifs[i]
	if n.st == member {
		eq := u.ifs[n.p].eq
		for k, m := range eq {
			if m == i {
				if k > 0 {
					return eq[k-1]
				}
				break
			}
		}
		return n.p
	}
	if p := u.prevAnchor(i); p != 0 {
		return u.last(p)
	}
	return 0
}

// inOrder calls f on the subtree rooted at i: left, the anchor, its chain, right.
// Returns false once f does. Recursive.
func (u *base[T, P, S]) inOrder(i S, f func(S) bool) bool {
	if i == 0 {
		return true
	}
	n := &u.ifs[i]
	if !u.inOrder(n.l, f) || !f(i) {
		return false
	}
	for _, m := range n.eq {
		if !f(m) {
			return false
		}
	}
	return u.inOrder(n.r, f)
}

// Cursor walks the tree one node at a time from a starting node, forwards or backwards.
// The tree must not be modified while a Cursor is in use; create a new one after mutating.
type Cursor[T any, P constraints.Signed, S constraints.Unsigned] struct {
	u    *base[T, P, S]
	cur  S
	back bool
}

// Next node, or (0, false) once the walk is exhausted. It never turns true again after that.
func (c *Cursor[T, P, S]) Next() (S, bool) {
	if c.cur == 0 {
		return 0, false
	}
	if c.back {
		c.cur = c.u.predecessor(c.cur)
	} else {
		c.cur = c.u.successor(c.cur)
	}
	return c.cur, c.cur != 0
}

// Current node of the cursor, 0 once exhausted.
func (c *Cursor[T, P, S]) Current() S {
	return c.cur
}
