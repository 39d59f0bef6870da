package Trees

import (
	"slices"
)

// addChild attaches the detached node x below anchor at. x.v holds its position relative to
// at's parent, which is its absolute position when at is the root. On ErrDuplicateNode x is
// left detached with its original value.
// Time: O(D + length of the equal chain at x's position)
func (u *base[T, P, S]) addChild(at, x S) (reroot[S], error) {
	n := &u.ifs[x]
	orig := n.v
	for cur := at; ; {
		c := &u.ifs[cur]
		if n.v -= c.v; n.v > 0 {
			if c.r == 0 {
				c.r = x
				n.p, n.st = cur, anchor
				return reroot[S]{}, nil
			}
			cur = c.r
		} else if n.v < 0 {
			if c.l == 0 {
				c.l = x
				n.p, n.st = cur, anchor
				return reroot[S]{}, nil
			}
			cur = c.l
		} else {
			if o := u.Cmp(u.vs[x], u.vs[cur]); o == 0 {
				n.v = orig
				return reroot[S]{}, ErrDuplicateNode
			} else if o < 0 {
				return u.rotate(cur, x), nil
			}
			i := len(c.eq)
			for ; i > 0; i-- {
				if o := u.Cmp(u.vs[c.eq[i-1]], u.vs[x]); o < 0 {
					break
				} else if o == 0 {
					n.v = orig
					return reroot[S]{}, ErrDuplicateNode
				}
			}
			c.eq = slices.Insert(c.eq, i, x)
			n.p, n.v, n.st = cur, 0, member
			return reroot[S]{}, nil
		}
	}
}

// rotate makes x, which sorts before anchor a, the anchor of a's group. a and its chain
// become x's chain, a first.
// Time: O(length of the equal chain)
func (u *base[T, P, S]) rotate(a, x S) reroot[S] {
	rr := u.transplant(a, x)
	g := u.ifs[a].eq
	eq := make([]S, 0, len(g)+1)
	eq = append(append(eq, a), g...)
	u.ifs[x].eq = eq
	for _, m := range eq {
		u.ifs[m] = info[P, S]{p: x, st: member}
	}
	return rr
}
