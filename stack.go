package broadphase2d

// growableStack is a linked-list LIFO stack used by DynamicTree's explicit
// traversal in Query and RayCast. The reference version stores interface{}
// so it can back any traversal; here it's generic since the only payload
// this package ever pushes is a node index.
//
// Adapted from https://gist.github.com/bemasher/1777766.
type growableStack[T any] struct {
	top  *stackElement[T]
	size int
}

type stackElement[T any] struct {
	value T
	next  *stackElement[T]
}

func newGrowableStack[T any]() *growableStack[T] {
	return &growableStack[T]{}
}

func (s *growableStack[T]) Len() int { return s.size }

func (s *growableStack[T]) Push(value T) {
	s.top = &stackElement[T]{value: value, next: s.top}
	s.size++
}

// Pop removes and returns the top element. It panics if the stack is empty;
// callers in this package always guard with Len() first.
func (s *growableStack[T]) Pop() T {
	assertf(s.size > 0, "growableStack: pop from empty stack")
	v := s.top.value
	s.top = s.top.next
	s.size--
	return v
}
