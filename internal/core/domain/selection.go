package domain

import "sort"

// Selection is a set of indices into a flat entry list.
// The zero value is an empty selection ready to use.
type Selection struct {
	set map[int]struct{}
}

// Add inserts an index.
func (s *Selection) Add(index int) {
	if s.set == nil {
		s.set = make(map[int]struct{})
	}
	s.set[index] = struct{}{}
}

// Remove deletes an index.
func (s *Selection) Remove(index int) {
	delete(s.set, index)
}

// Toggle flips membership and reports whether the index is now selected.
func (s *Selection) Toggle(index int) bool {
	if s.Has(index) {
		s.Remove(index)
		return false
	}
	s.Add(index)
	return true
}

// Has reports whether an index is selected.
func (s *Selection) Has(index int) bool {
	_, ok := s.set[index]
	return ok
}

// Len returns the number of selected indices.
func (s *Selection) Len() int {
	return len(s.set)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.set = nil
}

// Indices returns the selected indices in ascending order.
func (s *Selection) Indices() []int {
	out := make([]int, 0, len(s.set))
	for i := range s.set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
