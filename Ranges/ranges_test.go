package Ranges

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeric_Classify(t *testing.T) {
	r, err := NewNumeric(3, 7)
	require.NoError(t, err)
	assert.Equal(t, Below, r.Classify(2))
	assert.Equal(t, Inside, r.Classify(3))
	assert.Equal(t, Inside, r.Classify(7))
	assert.Equal(t, Above, r.Classify(8))
}

func TestNumeric_PushPop(t *testing.T) {
	r, err := NewNumeric(10, 10)
	require.NoError(t, err)
	r.Push(8)
	r.Push(-3)
	assert.Equal(t, 5, r.Offset())
	assert.Equal(t, Inside, r.Classify(5))
	assert.Equal(t, Below, r.Classify(4))
	r.Pop()
	assert.Equal(t, Inside, r.Classify(2))
	r.Pop()
	r.Pop()
	assert.Equal(t, 0, r.Offset())
	assert.Equal(t, Above, r.Classify(11))
}

func TestNumeric_Inverted(t *testing.T) {
	_, err := NewNumeric(int64(5), 4)
	assert.ErrorIs(t, err, ErrInvertedRange)
}

func TestPref(t *testing.T) {
	r, err := NewPref("b", "d", cmp.Compare[string])
	require.NoError(t, err)
	assert.Equal(t, Below, r.Classify("a"))
	assert.Equal(t, Inside, r.Classify("c"))
	assert.Equal(t, Above, r.Classify("e"))
	assert.Negative(t, r.Compare("a", "b"))

	_, err = NewPref("z", "a", cmp.Compare[string])
	assert.ErrorIs(t, err, ErrInvertedRange)
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "below", Below.String())
	assert.Equal(t, "inside", Inside.String())
	assert.Equal(t, "above", Above.String())
}
