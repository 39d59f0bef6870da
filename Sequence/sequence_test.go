package Sequence

import (
	"bytes"
	"math/rand"
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions[K Key, T any](s *Sequence[K, T]) map[K]int {
	m := make(map[K]int)
	s.Range(func(k K, pos int, _ T) bool {
		m[k] = pos
		return true
	})
	return m
}

func TestSequence_MarkUnmark(t *testing.T) {
	s := New[string, int]()
	require.NoError(t, s.Mark("a", 5, 1))
	require.NoError(t, s.Mark("b", 3, 2))
	require.ErrorIs(t, s.Mark("a", 9, 3), ErrKeyExists)
	assert.Equal(t, 2, s.Len())

	p, ok := s.Position("a")
	assert.True(t, ok)
	assert.Equal(t, 5, p)
	v, ok := s.Value("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	v, err := s.Unmark("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	_, err = s.Unmark("a")
	assert.ErrorIs(t, err, ErrNoKey)
	_, ok = s.Position("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
	require.NoError(t, s.Check())
}

func TestSequence_InsertText(t *testing.T) {
	s := New[int, struct{}]()
	for k, p := range []int{0, 4, 4, 7, 10} {
		require.NoError(t, s.Mark(k, p, struct{}{}))
	}
	require.NoError(t, s.InsertText(4, 3))
	assert.Equal(t, map[int]int{0: 0, 1: 7, 2: 7, 3: 10, 4: 13}, positions(s))
	require.NoError(t, s.InsertText(20, 3))
	require.NoError(t, s.InsertText(0, 0))
	assert.ErrorIs(t, s.InsertText(0, -1), ErrNegativeLength)
	assert.Equal(t, map[int]int{0: 0, 1: 7, 2: 7, 3: 10, 4: 13}, positions(s))
	require.NoError(t, s.Check())
}

func TestSequence_DeleteText(t *testing.T) {
	s := New[string, int]()
	require.NoError(t, s.Mark("start", 2, 0))
	require.NoError(t, s.Mark("x", 4, 0))
	require.NoError(t, s.Mark("y", 6, 0))
	require.NoError(t, s.Mark("end", 7, 0))
	require.NoError(t, s.Mark("far", 12, 0))
	require.NoError(t, s.DeleteText(2, 5))
	assert.Equal(t, map[string]int{"start": 2, "x": 2, "y": 2, "end": 2, "far": 7}, positions(s))
	// co-located markers stay in marking order
	assert.Equal(t, []string{"start", "x", "y", "end"}, s.Between(2, 2))
	assert.Equal(t, []string{"far"}, s.Between(3, 100))
	assert.Nil(t, s.Between(5, 4))
	require.NoError(t, s.Check())
}

func TestSequence_Logging(t *testing.T) {
	var buf bytes.Buffer
	s := New[int, int](WithLogger(zerolog.New(&buf)), WithHint(8))
	require.NoError(t, s.Mark(1, 3, 0))
	require.NoError(t, s.InsertText(0, 2))
	assert.Contains(t, buf.String(), "text inserted")
}

// Random edits against a plain map of positions.
func TestSequence_Random(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	s := New[int, int]()
	want := make(map[int]int)
	seq := make(map[int]int) // marking order
	next := 0
	for range 2000 {
		switch op := r.Intn(6); {
		case op < 2 || len(want) == 0:
			next++
			p := r.Intn(200)
			require.NoError(t, s.Mark(next, p, next))
			want[next], seq[next] = p, next
		case op < 3:
			for k := range want {
				v, err := s.Unmark(k)
				require.NoError(t, err)
				require.Equal(t, k, v)
				delete(want, k)
				break
			}
		case op < 4:
			pos, n := r.Intn(220), r.Intn(10)
			require.NoError(t, s.InsertText(pos, n))
			for k, p := range want {
				if p >= pos {
					want[k] = p + n
				}
			}
		default:
			pos, n := r.Intn(220), r.Intn(10)
			require.NoError(t, s.DeleteText(pos, n))
			for k, p := range want {
				if p >= pos+n {
					want[k] = p - n
				} else if p > pos {
					want[k] = pos
				}
			}
		}
		require.Equal(t, want, positions(s))
	}
	require.NoError(t, s.Check())

	var order []int
	s.Range(func(k, _ int, _ int) bool {
		order = append(order, k)
		return true
	})
	assert.True(t, slices.IsSortedFunc(order, func(a, b int) int {
		if want[a] != want[b] {
			return want[a] - want[b]
		}
		return seq[a] - seq[b]
	}))
}
