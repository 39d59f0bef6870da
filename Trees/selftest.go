package Trees

import (
	"fmt"

	"github.com/g-m-twostay/postree"
	"github.com/g-m-twostay/postree/Queues"
)

type frame[P any, S any] struct {
	i, parent S
	at        P // expected absolute value
	lo, hi    P // exclusive bounds
	hasLo     bool
	hasHi     bool
}

// SelfTest verifies the tree: the search tree order of anchors ("bounds"), that relative values
// add up along parent links ("offsets"), the anchor/chain split ("shape") and the order inside
// chains ("chain order"), that exactly the attached nodes are reachable ("reachability") and that
// parent links match and no node is reached twice ("links").
// It returns a *SelfTestError describing the first violation, or nil.
// Time: O(n*D)
func (u *Tree[T, P, S]) SelfTest() error {
	if err := u.selfTest(); err != nil {
		u.log.Warn().Err(err).Msg("self test failed")
		return err
	}
	return nil
}

func (u *Tree[T, P, S]) selfTest() error {
	fail := func(check string, i S, format string, args ...any) error {
		return &SelfTestError{check, uint64(i), fmt.Sprintf(format, args...)}
	}
	seen := postree.NewBitArray(len(u.ifs))
	q := Queues.MakeArrayQueue[frame[P, S]](16)
	if u.root != 0 {
		q.Push(frame[P, S]{i: u.root, at: u.ifs[u.root].v})
	}
	count := 0
	for !q.Empty() {
		f, _ := q.Pop()
		n := &u.ifs[f.i]
		if seen.Mark(int(f.i)) {
			return fail("links", f.i, "reached twice")
		}
		count++
		if n.p != f.parent {
			return fail("links", f.i, "parent link is %d, reached from %d", n.p, f.parent)
		}
		if n.st != anchor {
			return fail("shape", f.i, "structural node is %v", n.st)
		}
		if a := u.abs(f.i); a != f.at {
			return fail("offsets", f.i, "absolute value %d along parents, %d from the root", a, f.at)
		}
		if (f.hasLo && f.at <= f.lo) || (f.hasHi && f.at >= f.hi) {
			return fail("bounds", f.i, "value %d outside (%d, %d)", f.at, f.lo, f.hi)
		}
		prev := f.i
		for _, m := range n.eq {
			mn := &u.ifs[m]
			if seen.Mark(int(m)) {
				return fail("links", m, "reached twice")
			}
			count++
			if mn.st != member || mn.p != f.i {
				return fail("shape", m, "chain node is %v with parent %d, want member of %d", mn.st, mn.p, f.i)
			}
			if mn.v != 0 || mn.l != 0 || mn.r != 0 || len(mn.eq) > 0 {
				return fail("shape", m, "chain node has value %d, children (%d, %d), chain length %d", mn.v, mn.l, mn.r, len(mn.eq))
			}
			if u.Cmp(u.vs[prev], u.vs[m]) >= 0 {
				return fail("chain order", m, "doesn't sort after %d", prev)
			}
			prev = m
		}
		if n.l != 0 {
			q.Push(frame[P, S]{n.l, f.i, f.at + u.ifs[n.l].v, f.lo, f.at, f.hasLo, true})
		}
		if n.r != 0 {
			q.Push(frame[P, S]{n.r, f.i, f.at + u.ifs[n.r].v, f.at, f.hi, true, f.hasHi})
		}
	}
	if count != u.size {
		return fail("reachability", u.root, "%d nodes reachable, %d attached", count, u.size)
	}
	for i := 1; i < len(u.ifs); i++ {
		if st := u.ifs[i].st; (st == anchor || st == member) && !seen.Get(i) {
			return fail("reachability", S(i), "%v not reachable from the root", st)
		}
	}
	return nil
}
