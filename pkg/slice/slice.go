// Package slice contains small generic slice helpers and a fixed-size bitset
// used as closed set by the path search.
package slice

// FixedSizeSlice is a set of indices in [0, length) which tracks its size.
type FixedSizeSlice struct {
	slice        []bool
	numSetValues int
}

func MakeFixedSizeSlice(length int) FixedSizeSlice {
	return FixedSizeSlice{slice: make([]bool, length), numSetValues: 0}
}

// Len returns the number of set indices.
func (s *FixedSizeSlice) Len() int { return s.numSetValues }

// Cap returns the number of indices the set can hold.
func (s *FixedSizeSlice) Cap() int { return len(s.slice) }

func (s *FixedSizeSlice) Add(indices ...int) {
	for _, index := range indices {
		if !s.slice[index] {
			s.slice[index] = true
			s.numSetValues++
		}
	}
}

func (s *FixedSizeSlice) Remove(indices ...int) {
	for _, index := range indices {
		if s.slice[index] {
			s.slice[index] = false
			s.numSetValues--
		}
	}
}

// Has reports whether index is set. Out of range indices are never set.
func (s *FixedSizeSlice) Has(index int) bool {
	return index >= 0 && index < len(s.slice) && s.slice[index]
}

func (s *FixedSizeSlice) Get() []bool { return s.slice }

func (s *FixedSizeSlice) Ratio() float64 {
	if len(s.slice) == 0 {
		return 0
	}
	return float64(s.numSetValues) / float64(len(s.slice))
}

func ReverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func Contains[T comparable](s []T, value T) bool {
	for _, a := range s {
		if a == value {
			return true
		}
	}
	return false
}

// Compare returns the number of positions in which s1 and s2 differ.
// Slices of different length are reported as -1.
func Compare[T comparable](s1 []T, s2 []T) int {
	if len(s1) != len(s2) {
		return -1
	}
	differences := 0
	for i := 0; i < len(s1); i++ {
		if s1[i] != s2[i] {
			differences++
		}
	}
	return differences
}
