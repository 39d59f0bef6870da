package Queues

import (
	"errors"
	"math/rand"
	"testing"
)

func TestArrayQueue(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	q := MakeArrayQueue[int](0)
	var model []int
	for i := range 5000 {
		if r.Intn(3) != 0 {
			q.Push(i)
			model = append(model, i)
		} else {
			v, err := q.Pop()
			if len(model) == 0 {
				var e *EmptyQueueError
				if !errors.As(err, &e) {
					t.Fatalf("pop on empty queue returned %v, want EmptyQueueError", err)
				}
				continue
			}
			if err != nil || v != model[0] {
				t.Fatalf("popped (%d, %v), want %d", v, err, model[0])
			}
			model = model[1:]
		}
		if q.Size() != uint(len(model)) {
			t.Fatalf("size is %d, want %d", q.Size(), len(model))
		}
		if len(model) > 0 && q.Peek() != model[0] {
			t.Fatalf("peek is %d, want %d", q.Peek(), model[0])
		}
		if i%997 == 0 {
			q.Shrink()
		}
	}
	q.Clear()
	if !q.Empty() {
		t.Errorf("queue not empty after Clear")
	}
}
