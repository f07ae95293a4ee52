// Package history keeps a bounded linear undo/redo timeline of value snapshots.
package history

// DefaultLimit is the undo capacity used when none is configured.
const DefaultLimit = 100

// Stack holds past (undo) and future (redo) snapshots around a live value owned by the caller.
// Both slices are ordered oldest first. It is not safe for concurrent use.
type Stack[T any] struct {
	undo  []T
	redo  []T
	limit int
}

// New constructs a Stack retaining at most limit undo entries. limit <= 0 uses DefaultLimit.
func New[T any](limit int) *Stack[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack[T]{limit: limit}
}

// Limit returns the undo capacity.
func (s *Stack[T]) Limit() int {
	return s.limit
}

// Commit records prev as the most recent undo entry and discards the redo future.
// The oldest entry is evicted once the capacity is exceeded.
func (s *Stack[T]) Commit(prev T) {
	s.pushUndo(prev)
	clear(s.redo)
	s.redo = s.redo[:0]
}

// Undo swaps current for the most recent undo entry, moving current onto the redo stack.
// It reports false, and changes nothing, when there is nothing to undo.
func (s *Stack[T]) Undo(current T) (T, bool) {
	prev, ok := pop(&s.undo)
	if !ok {
		return prev, false
	}
	s.redo = append(s.redo, current)
	return prev, true
}

// Redo is the mirror image of Undo.
func (s *Stack[T]) Redo(current T) (T, bool) {
	next, ok := pop(&s.redo)
	if !ok {
		return next, false
	}
	s.pushUndo(current)
	return next, true
}

// CanUndo reports whether Undo would change anything.
func (s *Stack[T]) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo reports whether Redo would change anything.
func (s *Stack[T]) CanRedo() bool {
	return len(s.redo) > 0
}

// Len returns the number of undo and redo entries.
func (s *Stack[T]) Len() (undo, redo int) {
	return len(s.undo), len(s.redo)
}

// Undos returns a copy of the undo entries, oldest first.
func (s *Stack[T]) Undos() []T {
	return append([]T{}, s.undo...)
}

// Redos returns a copy of the redo entries, oldest first.
func (s *Stack[T]) Redos() []T {
	return append([]T{}, s.redo...)
}

// Restore replaces both stacks. Only the newest Limit undo entries are kept.
func (s *Stack[T]) Restore(undo, redo []T) {
	if over := len(undo) - s.limit; over > 0 {
		undo = undo[over:]
	}
	s.undo = append([]T{}, undo...)
	s.redo = append([]T{}, redo...)
}

func (s *Stack[T]) pushUndo(v T) {
	s.undo = append(s.undo, v)
	if over := len(s.undo) - s.limit; over > 0 {
		n := copy(s.undo, s.undo[over:])
		clear(s.undo[n:])
		s.undo = s.undo[:n]
	}
}

func pop[T any](stack *[]T) (T, bool) {
	var zero T
	items := *stack
	if len(items) == 0 {
		return zero, false
	}
	last := items[len(items)-1]
	items[len(items)-1] = zero
	*stack = items[:len(items)-1]
	return last, true
}
