package broadphase2d

import "testing"

func TestGrowableStackPushPop(t *testing.T) {
	s := newGrowableStack[int32]()
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}

	s.Push(1)
	s.Push(2)
	s.Push(3)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	for _, want := range []int32{3, 2, 1} {
		got := s.Pop()
		if got != want {
			t.Fatalf("Pop() = %d, want %d", got, want)
		}
	}

	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after draining", s.Len())
	}
}

func TestGrowableStackPopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic popping an empty stack")
		}
	}()
	s := newGrowableStack[int32]()
	s.Pop()
}
