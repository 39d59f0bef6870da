package Trees

import (
	"cmp"
	"math/rand"
	"testing"

	"github.com/g-m-twostay/postree/Ranges"
)

var (
	bAddN = 100000
	bShfN = bAddN / 2
	rg    = rand.New(rand.NewSource(0))
)

func create(b *testing.B, n int) (*intTree, []uint32) {
	b.Helper()
	u := New[int, int, uint32](cmp.Compare[int], WithHint(n))
	hs := make([]uint32, n)
	for i := range n {
		h, err := u.Insert(rg.Intn(n*4), i)
		if err != nil {
			b.Fatal(err)
		}
		hs[i] = h
	}
	return u, hs
}

func BenchmarkInsert0(b *testing.B) {
	for range b.N {
		u := New[int, int, uint32](cmp.Compare[int])
		for i := range bAddN {
			u.Insert(rg.Intn(bAddN*4), i)
		}
	}
}

func BenchmarkInsert1(b *testing.B) {
	for range b.N {
		u := New[int, int, uint32](cmp.Compare[int], WithHint(bAddN))
		for i := range bAddN {
			u.Insert(rg.Intn(bAddN*4), i)
		}
	}
}

func BenchmarkAddSpaceBefore(b *testing.B) {
	u, hs := create(b, bAddN)
	b.ResetTimer()
	for range b.N {
		for range bShfN {
			u.AddSpaceBefore(hs[rg.Intn(len(hs))], 1+rg.Intn(8))
		}
	}
}

func BenchmarkRemoveNode(b *testing.B) {
	for range b.N {
		b.StopTimer()
		u, hs := create(b, bAddN)
		b.StartTimer()
		for _, h := range hs {
			u.RemoveNode(h)
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	u, _ := create(b, bAddN)
	b.ResetTimer()
	for range b.N {
		for range bShfN {
			lo := rg.Intn(bAddN * 4)
			r, _ := Ranges.NewNumeric(lo, lo+16)
			u.Search(r)
		}
	}
}
