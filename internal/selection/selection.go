// Package selection tracks a single chosen identifier among a candidate set.
package selection

// Selection holds at most one selected value. The zero value has nothing
// selected. Membership of the value in any candidate set is the caller's
// concern; Select never rejects a value.
type Selection[T comparable] struct {
	value T
	ok    bool
}

// New returns a Selection with initial already selected.
func New[T comparable](initial T) Selection[T] {
	return Selection[T]{value: initial, ok: true}
}

// Select replaces the current selection with v.
func (s *Selection[T]) Select(v T) {
	s.value = v
	s.ok = true
}

// Selected returns the current value and whether anything is selected.
func (s Selection[T]) Selected() (T, bool) {
	return s.value, s.ok
}

// Is reports whether v is the current selection.
func (s Selection[T]) Is(v T) bool {
	return s.ok && s.value == v
}

// Cycle selects the candidate delta positions away from the current one,
// wrapping at either end. With nothing selected, a positive delta starts at
// the first candidate and a negative one at the last.
func (s *Selection[T]) Cycle(candidates []T, delta int) {
	n := len(candidates)
	if n == 0 || delta == 0 {
		return
	}
	idx := -1
	if s.ok {
		for i, c := range candidates {
			if c == s.value {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		if delta > 0 {
			s.Select(candidates[0])
		} else {
			s.Select(candidates[n-1])
		}
		return
	}
	next := ((idx+delta)%n + n) % n
	s.Select(candidates[next])
}
