package Trees

// remove node i from the structure. Its value is restored to its absolute value and all its
// links are cleared, so it can be added again.
// Time: O(D + length of the equal chain)
func (u *base[T, P, S]) remove(i S) (reroot[S], error) {
	n := &u.ifs[i]
	switch {
	case n.st == member:
		at := u.abs(i)
		u.unlink(i)
		*n = info[P, S]{v: at, st: detached}
		return reroot[S]{}, nil
	case len(n.eq) > 0:
		return u.promote(i), nil
	case n.l != 0 && n.r != 0:
		s := u.smallest(n.r)
		if _, err := u.remove(s); err != nil {
			return reroot[S]{}, err
		}
		return u.replaceWith(i, s, u.ifs[s].v)
	case n.l != 0:
		return u.replaceWith(i, n.l, u.abs(n.l))
	case n.r != 0:
		return u.replaceWith(i, n.r, u.abs(n.r))
	default:
		return u.replaceWith(i, 0, 0)
	}
}

// promote the head of anchor a's chain to a's position, taking the rest of the chain with it.
// The structure's shape doesn't change.
func (u *base[T, P, S]) promote(a S) reroot[S] {
	at := u.abs(a)
	eq := u.ifs[a].eq
	h := eq[0]
	u.ifs[h] = info[P, S]{}
	rr := u.transplant(a, h)
	if len(eq) > 1 {
		u.ifs[h].eq = eq[1:]
		for _, m := range eq[1:] {
			u.ifs[m].p = h
		}
	}
	u.ifs[a] = info[P, S]{v: at, st: detached}
	return rr
}

// replaceWith puts data in the structural slot of anchor i, so that data's absolute value is
// target, and detaches i. data==0 empties the slot. data is unlinked from where it was and takes
// over i's subtrees unless it was itself that subtree. i must not have a chain.
// Nodes of data's subtrees that end up at data's absolute value are folded into its chain.
func (u *base[T, P, S]) replaceWith(i, data S, target P) (rr reroot[S], err error) {
	n := &u.ifs[i]
	if len(n.eq) > 0 {
		return rr, ErrInvalidState
	}
	l, r := n.l, n.r
	if data == 0 {
		if l != 0 || r != 0 {
			return rr, ErrInvalidState
		}
	} else if d := &u.ifs[data]; (l != 0 && l != data && d.l != 0) || (r != 0 && r != data && d.r != 0) {
		return rr, ErrInvalidState
	}
	at := u.abs(i)
	pa := at - n.v
	if s := u.slot(i); s != nil {
		*s = data
	} else {
		rr = reroot[S]{i, data, true}
	}
	if data != 0 {
		u.unlink(data)
		d := &u.ifs[data]
		if l != 0 && l != data {
			d.l = l
			u.ifs[l].v += at - target
			u.ifs[l].p = data
		}
		if r != 0 && r != data {
			d.r = r
			u.ifs[r].v += at - target
			u.ifs[r].p = data
		}
		d.v, d.p, d.st = target-pa, n.p, anchor
	}
	*n = info[P, S]{v: at, st: detached}
	if data != 0 {
		var fix reroot[S]
		fix, err = u.repair(data)
		rr = rr.then(fix)
	}
	return
}

// repair looks along the boundary of d's subtrees for a node at d's absolute value and folds it,
// with its chain, into d's group. Such a node must sit on the near spine with no child towards d.
func (u *base[T, P, S]) repair(d S) (reroot[S], error) {
	var acc P
	for c := u.ifs[d].r; c != 0; c = u.ifs[c].l {
		if acc += u.ifs[c].v; acc < 0 {
			return reroot[S]{}, ErrCorruptTree
		} else if acc == 0 {
			if u.ifs[c].l != 0 {
				return reroot[S]{}, ErrCorruptTree
			}
			return u.fold(d, c, u.ifs[c].r)
		}
	}
	acc = 0
	for c := u.ifs[d].l; c != 0; c = u.ifs[c].r {
		if acc += u.ifs[c].v; acc > 0 {
			return reroot[S]{}, ErrCorruptTree
		} else if acc == 0 {
			if u.ifs[c].r != 0 {
				return reroot[S]{}, ErrCorruptTree
			}
			return u.fold(d, c, u.ifs[c].l)
		}
	}
	return reroot[S]{}, nil
}

// fold splices anchor c out, replacing it with its only child rest, and merges c's group
// into the group of anchor d.
func (u *base[T, P, S]) fold(d, c, rest S) (reroot[S], error) {
	g := u.group(c)
	all, err := u.merge(u.group(d), g)
	if err != nil {
		return reroot[S]{}, err
	}
	cn := &u.ifs[c]
	if s := u.slot(c); s != nil {
		*s = rest
	}
	if rest != 0 {
		u.ifs[rest].v += cn.v
		u.ifs[rest].p = cn.p
	}
	cn.p, cn.l, cn.r = 0, 0, 0
	return u.regroup(d, all), nil
}
