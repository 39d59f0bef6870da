package Trees

// addSpaceBefore shifts node i and everything ordered after it by s, leaving everything before
// it in place. Only the path from i to the root is touched. Reports whether i now shares its
// position with its structural predecessor, in which case the caller must re-add it.
// Shifting must not invert the order of any two nodes; the cases that would are rejected
// with ErrInvalidState before anything changes.
// Time: O(D)
func (u *base[T, P, S]) addSpaceBefore(i S, s P) (collided bool, err error) {
	u.visits = 0
	if s == 0 {
		return false, nil
	}
	if u.ifs[i].st == member {
		if s < 0 {
			return false, ErrInvalidState
		}
		u.split(i)
	}
	var prev S
	if s < 0 {
		if prev = u.prevAnchor(i); prev != 0 && u.abs(prev) > u.abs(i)+s {
			return false, ErrInvalidState
		}
	}
	n := &u.ifs[i]
	n.v += s
	if n.l != 0 {
		u.ifs[n.l].v -= s
	}
	u.visits++
	for cur, p := i, n.p; p != 0; cur, p = p, u.ifs[p].p {
		u.visits++
		if u.ifs[p].l == cur {
			u.ifs[p].v += s
			u.ifs[cur].v -= s
		}
	}
	return prev != 0 && u.abs(prev) == u.abs(i), nil
}

// split turns member i into an anchor holding the part of its chain after it, placed as the
// structural successor of its old anchor at the same absolute value. The tree is only valid
// again once i is shifted forward.
func (u *base[T, P, S]) split(i S) {
	a := u.ifs[i].p
	an := &u.ifs[a]
	k := 0
	for an.eq[k] != i {
		k++
	}
	tail := append([]S(nil), an.eq[k+1:]...)
	an.eq = an.eq[:k:k]
	if len(an.eq) == 0 {
		an.eq = nil
	}
	n := &u.ifs[i]
	n.eq, n.st = tail, anchor
	for _, m := range tail {
		u.ifs[m].p = i
	}
	if an.r == 0 {
		an.r = i
		n.p, n.v = a, 0
	} else {
		m := u.smallest(an.r)
		u.ifs[m].l = i
		n.p, n.v = m, -(u.abs(m) - u.abs(a))
	}
}
