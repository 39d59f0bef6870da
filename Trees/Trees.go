/*
Package Trees implements an ordered index of nodes tagged with integer positions that can shift
every node after a given one in time proportional to the depth of the tree rather than to the
number of shifted nodes. It is meant as the positional backbone of sequence models, like the
marks of a text buffer that move when text is inserted or deleted before them.

# Relative values
A node stores its position relative to its parent's absolute position; the root stores its
absolute position. Shifting a node and everything after it only rewrites the values on the path
from that node to the root.

# Equal chains
Nodes sharing a position form a group. One of them, the anchor, is linked into the binary search
tree; the others hang off it in its equal chain, ascending by the tree's Cmp. The anchor is
always the smallest of its group.

# Handles
Nodes live in an arena owned by the Tree and are addressed by indices of type S; 0 is never a
valid node. A handle stays valid across Add and Remove until it is passed to Free.

# Balance
The tree never rebalances. Its depth depends on the order of insertions and isn't bounded by
O(log n); D in the complexity notes below is the current depth.

The Tree isn't safe for concurrent use.
*/
package Trees

import (
	"fmt"

	"github.com/g-m-twostay/postree/Ranges"
	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
)

// Tree of nodes holding payloads of type T at positions of type P, indexed by S.
type Tree[T any, P constraints.Signed, S constraints.Unsigned] struct {
	base[T, P, S]
	root S
	size int
	log  zerolog.Logger
}

// New empty tree. cmp must be a strict order among payloads that can share a position; it decides
// the order inside equal chains. PrefSearch also needs it to agree with position order.
func New[T any, P constraints.Signed, S constraints.Unsigned](cmp func(T, T) int, opts ...Option) *Tree[T, P, S] {
	c := config{log: zerolog.Nop()}
	for _, o := range opts {
		o(&c)
	}
	ifs := make([]info[P, S], 1, c.hint+1)
	vs := make([]T, 1, c.hint+1)
	return &Tree[T, P, S]{base: base[T, P, S]{ifs: ifs, vs: vs, Cmp: cmp}, log: c.log}
}

// apply a root change reported by a node-level mutation.
func (u *Tree[T, P, S]) apply(rr reroot[S]) error {
	if !rr.ok {
		return nil
	}
	if rr.from != u.root {
		return ErrMissingRootUpdate
	}
	u.root = rr.to
	u.log.Debug().Uint64("from", uint64(rr.from)).Uint64("to", uint64(rr.to)).Msg("root replaced")
	return nil
}

func (u *Tree[T, P, S]) stateOf(h S) state {
	if h == 0 || int(h) >= len(u.ifs) {
		return free
	}
	return u.ifs[h].st
}

func (u *Tree[T, P, S]) attached(h S) bool {
	st := u.stateOf(h)
	return st == anchor || st == member
}

// NewNode allocates a detached node at position pos holding v.
func (u *Tree[T, P, S]) NewNode(pos P, v T) (S, error) {
	if h := u.alloc(pos, v); h != 0 {
		return h, nil
	}
	return 0, ErrFull
}

// Free a detached node's slot for reuse. h is invalid afterwards.
func (u *Tree[T, P, S]) Free(h S) error {
	if u.stateOf(h) != detached {
		return fmt.Errorf("Trees: free %d: %w", h, ErrInvalidState)
	}
	u.release(h)
	return nil
}

// Add the detached node h to the tree at the position it holds.
// Fails with ErrDuplicateNode if a node at the same position compares equal to it, leaving h detached.
// Time: O(D + length of the equal chain)
func (u *Tree[T, P, S]) Add(h S) error {
	if u.stateOf(h) != detached {
		return fmt.Errorf("Trees: add %d: %w", h, ErrInvalidState)
	}
	if u.root == 0 {
		u.root, u.ifs[h].st = h, anchor
		u.size++
		return nil
	}
	rr, err := u.addChild(u.root, h)
	if err != nil {
		u.log.Warn().Err(err).Uint64("node", uint64(h)).Msg("add failed")
		return fmt.Errorf("Trees: add %d at %d: %w", h, u.ifs[h].v, err)
	}
	u.size++
	return u.apply(rr)
}

// Insert a new node holding v at pos. The node is freed again if it can't be added.
func (u *Tree[T, P, S]) Insert(pos P, v T) (S, error) {
	h, err := u.NewNode(pos, v)
	if err != nil {
		return 0, err
	}
	if err = u.Add(h); err != nil {
		u.release(h)
		return 0, err
	}
	return h, nil
}

// RemoveNode detaches h from the tree. Its position is kept, so it can be added again.
// Time: O(D + length of the equal chain)
func (u *Tree[T, P, S]) RemoveNode(h S) error {
	if !u.attached(h) {
		return fmt.Errorf("Trees: remove %d: %w", h, ErrInvalidState)
	}
	return u.detach(h)
}

func (u *Tree[T, P, S]) detach(h S) error {
	rr, err := u.remove(h)
	if err == nil {
		err = u.apply(rr)
	}
	if err != nil {
		u.log.Warn().Err(err).Uint64("node", uint64(h)).Msg("remove failed")
		return fmt.Errorf("Trees: remove %d: %w", h, err)
	}
	u.size--
	return nil
}

// Remove every node at pos for which filter returns true, or all of them if filter is nil.
// Returns the removed nodes in in-order.
// Time: O(D + k*(D + length of the equal chain)) for k removed nodes.
func (u *Tree[T, P, S]) Remove(pos P, filter func(S) bool) ([]S, error) {
	cur, rel := u.root, pos
	for cur != 0 {
		if rel -= u.ifs[cur].v; rel > 0 {
			cur = u.ifs[cur].r
		} else if rel < 0 {
			cur = u.ifs[cur].l
		} else {
			break
		}
	}
	if cur == 0 {
		return nil, nil
	}
	var out []S
	for _, h := range u.group(cur) {
		if filter != nil && !filter(h) {
			continue
		}
		if err := u.detach(h); err != nil {
			return out, err
		}
		out = append(out, h)
	}
	return out, nil
}

// AddSpaceBefore shifts h and every node after it by s, leaving the nodes before it untouched.
// A chain member shifted forward leaves its chain, together with the members after it. A node
// shifted back onto the position of its predecessor joins that position's group, bringing its
// own chain along. s must not move h before its predecessor, and a chain member can't be
// shifted back; both fail with ErrInvalidState without changing anything.
// Time: O(D), plus O(D + length of the equal chains) when h lands on its predecessor.
func (u *Tree[T, P, S]) AddSpaceBefore(h S, s P) error {
	if !u.attached(h) {
		return fmt.Errorf("Trees: space before %d: %w", h, ErrInvalidState)
	}
	if s < 0 && u.ifs[h].st == anchor {
		if prev := u.prevAnchor(h); prev != 0 && u.abs(prev) == u.abs(h)+s {
			if _, err := u.merge(u.group(prev), u.group(h)); err != nil {
				return fmt.Errorf("Trees: space before %d: %w", h, err)
			}
		}
	}
	collided, err := u.addSpaceBefore(h, s)
	if err != nil {
		return fmt.Errorf("Trees: space before %d by %d: %w", h, s, err)
	}
	if collided {
		return u.reinsert(h)
	}
	return nil
}

// reinsert anchor h after it landed on its predecessor's position. Its chain is taken off,
// h goes through removal and insertion, then the chain joins whatever group h ended up in.
func (u *Tree[T, P, S]) reinsert(h S) error {
	chain := u.ifs[h].eq
	u.ifs[h].eq = nil
	for _, m := range chain {
		u.ifs[m] = info[P, S]{st: detached}
	}
	rr, err := u.remove(h)
	if err == nil {
		if err = u.apply(rr); err == nil {
			rr, err = u.addChild(u.root, h)
		}
	}
	if err == nil {
		if err = u.apply(rr); err == nil && len(chain) > 0 {
			a := h
			if u.ifs[h].st == member {
				a = u.ifs[h].p
			}
			_, rr, err = u.absorb(a, chain)
			if err == nil {
				err = u.apply(rr)
			}
		}
	}
	if err != nil {
		u.log.Warn().Err(err).Uint64("node", uint64(h)).Msg("reinsertion failed")
		return fmt.Errorf("Trees: reinsert %d: %w", h, err)
	}
	u.log.Debug().Uint64("node", uint64(h)).Int("chain", len(chain)).Msg("merged into predecessor")
	return nil
}

// Search the tree by absolute position. r is evaluated against relative values through Push and
// Pop as the search descends, and is left as it was given.
// Time: O(D + k) for k nodes in the range.
func (u *Tree[T, P, S]) Search(r Ranges.Offsetter[P]) Buckets[S] {
	lo, hi := bucket[P, S]{up: true}, bucket[P, S]{}
	var in []S
	u.search(u.root, 0, r, &lo, &hi, &in)
	return Buckets[S]{lo.set, in, hi.set}
}

// PrefSearch the tree by payload, for when positions aren't known. r must order payloads like Cmp.
func (u *Tree[T, P, S]) PrefSearch(r Ranges.Classifier[T]) Buckets[S] {
	lo, hi := bucket[T, S]{up: true}, bucket[T, S]{}
	var in []S
	u.prefSearch(u.root, r, &lo, &hi, &in)
	return Buckets[S]{lo.set, in, hi.set}
}

// Ceiling is the first node at or after pos, 0 if there is none.
// Time: O(D); Space: O(1)
func (u *Tree[T, P, S]) Ceiling(pos P) S {
	return u.ceiling(u.root, pos)
}

// Range calls f on every node in in-order until f returns false. Recursive.
func (u *Tree[T, P, S]) Range(f func(S) bool) {
	u.inOrder(u.root, f)
}

// All nodes in in-order.
func (u *Tree[T, P, S]) All() []S {
	out := make([]S, 0, u.size)
	u.inOrder(u.root, func(h S) bool {
		out = append(out, h)
		return true
	})
	return out
}

// Size is the number of nodes in the tree.
func (u *Tree[T, P, S]) Size() int {
	return u.size
}

// Root node, 0 if the tree is empty.
func (u *Tree[T, P, S]) Root() S {
	return u.root
}

// Get the payload of h, nil if h isn't an allocated node.
func (u *Tree[T, P, S]) Get(h S) *T {
	if u.stateOf(h) == free {
		return nil
	}
	return &u.vs[h]
}

// Abs is the absolute position of h.
// Time: O(D)
func (u *Tree[T, P, S]) Abs(h S) P {
	if u.stateOf(h) == free {
		return 0
	}
	return u.abs(h)
}

// Rel is the stored value of h: relative to its parent, absolute when h is the root or detached.
func (u *Tree[T, P, S]) Rel(h S) P {
	if u.stateOf(h) == free {
		return 0
	}
	return u.ifs[h].v
}

// Parent of h; for chain members this is their anchor.
func (u *Tree[T, P, S]) Parent(h S) S {
	if u.stateOf(h) == free {
		return 0
	}
	return u.ifs[h].p
}

func (u *Tree[T, P, S]) Left(h S) S {
	if u.stateOf(h) == free {
		return 0
	}
	return u.ifs[h].l
}

func (u *Tree[T, P, S]) Right(h S) S {
	if u.stateOf(h) == free {
		return 0
	}
	return u.ifs[h].r
}

// Chain of h: the other nodes at its position if h is an anchor, nil otherwise.
func (u *Tree[T, P, S]) Chain(h S) []S {
	if u.stateOf(h) != anchor {
		return nil
	}
	return append([]S(nil), u.ifs[h].eq...)
}

// Attached reports whether h is in the tree.
func (u *Tree[T, P, S]) Attached(h S) bool {
	return u.attached(h)
}

// IsAnchor reports whether h is linked into the search tree itself rather than a chain.
func (u *Tree[T, P, S]) IsAnchor(h S) bool {
	return u.stateOf(h) == anchor
}

// SmallestChild is the smallest anchor in h's subtree, h included. Chains are ignored.
func (u *Tree[T, P, S]) SmallestChild(h S) S {
	if u.stateOf(h) != anchor {
		return 0
	}
	return u.smallest(h)
}

// LargestChild is the largest anchor in h's subtree, h included. Chains are ignored.
func (u *Tree[T, P, S]) LargestChild(h S) S {
	if u.stateOf(h) != anchor {
		return 0
	}
	return u.largest(h)
}

// SmallestSmallerChild is the smallest anchor in h's left subtree, 0 if it is empty.
func (u *Tree[T, P, S]) SmallestSmallerChild(h S) S {
	if u.stateOf(h) != anchor {
		return 0
	}
	return u.smallest(u.ifs[h].l)
}

// LargestLargerChild is the largest anchor in h's right subtree, 0 if it is empty.
func (u *Tree[T, P, S]) LargestLargerChild(h S) S {
	if u.stateOf(h) != anchor {
		return 0
	}
	return u.largest(u.ifs[h].r)
}

// Successor of h in in-order, 0 if h is the last node.
// Time: O(D + length of the equal chain); Space: O(1)
func (u *Tree[T, P, S]) Successor(h S) S {
	if !u.attached(h) {
		return 0
	}
	return u.successor(h)
}

// Predecessor of h in in-order, 0 if h is the first node.
// Time: O(D + length of the equal chain); Space: O(1)
func (u *Tree[T, P, S]) Predecessor(h S) S {
	if !u.attached(h) {
		return 0
	}
	return u.predecessor(h)
}

// Successors of h, h excluded, one per call to Cursor.Next.
func (u *Tree[T, P, S]) Successors(h S) *Cursor[T, P, S] {
	if !u.attached(h) {
		h = 0
	}
	return &Cursor[T, P, S]{u: &u.base, cur: h}
}

// Predecessors of h, h excluded, one per call to Cursor.Next.
func (u *Tree[T, P, S]) Predecessors(h S) *Cursor[T, P, S] {
	if !u.attached(h) {
		h = 0
	}
	return &Cursor[T, P, S]{u: &u.base, cur: h, back: true}
}

// First node in in-order, 0 if the tree is empty.
func (u *Tree[T, P, S]) First() S {
	return u.smallest(u.root)
}

// Last node in in-order, 0 if the tree is empty.
func (u *Tree[T, P, S]) Last() S {
	if u.root == 0 {
		return 0
	}
	return u.last(u.largest(u.root))
}

func (u *Tree[T, P, S]) maxDepth(i S, d int) int {
	if i == 0 {
		return d - 1
	}
	return max(u.maxDepth(u.ifs[i].l, d+1), u.maxDepth(u.ifs[i].r, d+1))
}

// MaxDepth of the search tree, counting edges from the root; -1 when empty. Chains don't count.
func (u *Tree[T, P, S]) MaxDepth() int {
	return u.maxDepth(u.root, 0)
}
