package Trees

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateNode is returned when two nodes at the same position compare equal under Cmp.
	ErrDuplicateNode = errors.New("Trees: duplicate node")
	// ErrMissingRootUpdate is returned when a mutation replaces the root of a hierarchy that
	// isn't the one rooted in the tree.
	ErrMissingRootUpdate = errors.New("Trees: root change outside the tree")
	// ErrCorruptTree is returned when a repair finds a node at the wrong side of an equal node,
	// which means an earlier mutation broke the ordering.
	ErrCorruptTree = errors.New("Trees: corrupt tree")
	// ErrInvalidState is returned when a node isn't in the shape an operation requires,
	// for example adding a node that is already in the tree.
	ErrInvalidState = errors.New("Trees: invalid node state")
	// ErrFull is returned when the index type can't address another node.
	ErrFull = errors.New("Trees: arena full")
)

// SelfTestError reports the first invariant violation SelfTest found.
type SelfTestError struct {
	Check  string // bounds, offsets, shape, chain order, reachability or links
	Node   uint64
	Detail string
}

func (e *SelfTestError) Error() string {
	return fmt.Sprintf("Trees: self test %s failed at node %d: %s", e.Check, e.Node, e.Detail)
}
