package compiler

// memo computes a value on first use and returns the same value afterwards.
// The init function may have side effects, such as emitting the statement
// that declares the value; they run exactly once.
type memo[T any] struct {
	init func() T
	val  T
	done bool
}

func newMemo[T any](init func() T) *memo[T] {
	return &memo[T]{init: init}
}

func (m *memo[T]) get() T {
	if !m.done {
		m.val = m.init()
		m.done = true
	}
	return m.val
}

// used reports whether get has been called.
func (m *memo[T]) used() bool {
	return m.done
}
