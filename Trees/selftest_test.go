package Trees

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// fixture is 5 at the root holding 50, with 51 and 52 in its chain, 3 and 8 below it.
func fixture(t *testing.T, opts ...Option) (u *intTree, h5, a, b, h3, h8 uint32) {
	u = New[int, int, uint32](func(x, y int) int { return x - y }, opts...)
	h5 = mustInsert(t, u, 5, 50)
	a = mustInsert(t, u, 5, 51)
	b = mustInsert(t, u, 5, 52)
	h3 = mustInsert(t, u, 3, 30)
	h8 = mustInsert(t, u, 8, 80)
	if err := u.SelfTest(); err != nil {
		t.Fatal(err)
	}
	return
}

func TestSelfTest_Detects(t *testing.T) {
	tests := []struct {
		check   string
		corrupt func(u *intTree, h5, a, b, h3, h8 uint32)
	}{
		{"bounds", func(u *intTree, h5, a, b, h3, h8 uint32) { u.ifs[h3].v = 4 }},
		{"links", func(u *intTree, h5, a, b, h3, h8 uint32) { u.ifs[h8].p = h3 }},
		{"shape", func(u *intTree, h5, a, b, h3, h8 uint32) { u.ifs[a].st = anchor }},
		{"shape", func(u *intTree, h5, a, b, h3, h8 uint32) { u.ifs[b].v = 1 }},
		{"chain order", func(u *intTree, h5, a, b, h3, h8 uint32) { u.ifs[h5].eq[0], u.ifs[h5].eq[1] = b, a }},
		{"reachability", func(u *intTree, h5, a, b, h3, h8 uint32) { u.size++ }},
		{"reachability", func(u *intTree, h5, a, b, h3, h8 uint32) {
			u.ifs[h5].r = 0
			u.size--
		}},
	}
	for i, test := range tests {
		var buf bytes.Buffer
		u, h5, a, b, h3, h8 := fixture(t, WithLogger(zerolog.New(&buf)))
		test.corrupt(u, h5, a, b, h3, h8)
		err := u.SelfTest()
		var ste *SelfTestError
		if !errors.As(err, &ste) {
			t.Errorf("case %d: got %v, want a *SelfTestError", i, err)
			continue
		}
		if ste.Check != test.check {
			t.Errorf("case %d: failed check %q (%v), want %q", i, ste.Check, err, test.check)
		}
		if !strings.Contains(buf.String(), "self test failed") {
			t.Errorf("case %d: failure wasn't logged", i)
		}
	}
}

func TestRepair_Corrupt(t *testing.T) {
	u := newTree()
	h5 := mustInsert(t, u, 5, 5)
	h9 := mustInsert(t, u, 9, 9)
	h7 := mustInsert(t, u, 7, 7)
	mustInsert(t, u, 6, 6)
	u.ifs[h7].v = -4
	if _, err := u.repair(h5); !errors.Is(err, ErrCorruptTree) {
		t.Errorf("node equal to its ancestor with a child towards it: got %v", err)
	}
	u.ifs[h9].v = -1
	if _, err := u.repair(h5); !errors.Is(err, ErrCorruptTree) {
		t.Errorf("right subtree below its parent: got %v", err)
	}
}

func TestTree_Logging(t *testing.T) {
	var buf bytes.Buffer
	u := New[int, int, uint32](func(x, y int) int { return x - y }, WithLogger(zerolog.New(&buf)))
	mustInsert(t, u, 5, 52)
	mustInsert(t, u, 5, 50)
	if !strings.Contains(buf.String(), "root replaced") {
		t.Errorf("root change wasn't logged: %s", buf.String())
	}
	buf.Reset()
	if _, err := u.Insert(5, 50); err == nil {
		t.Fatal("duplicate was added")
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("failed add wasn't logged: %s", buf.String())
	}
}

func TestTree_Full(t *testing.T) {
	u := New[int, int, uint8](func(x, y int) int { return x - y })
	for i := 1; i < 256; i++ {
		if _, err := u.Insert(i, i); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	if _, err := u.Insert(300, 300); !errors.Is(err, ErrFull) {
		t.Errorf("insert into a full arena returned %v", err)
	}
	h, _ := u.Remove(100, nil)
	if err := u.Free(h[0]); err != nil {
		t.Fatal(err)
	}
	if g, err := u.Insert(300, 300); err != nil || g != h[0] {
		t.Errorf("freed slot wasn't reused: got %d, %v", g, err)
	}
}
