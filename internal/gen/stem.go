package gen

import "strconv"

// newStem creates a Stem that yields stem1, stem2, ... skipping names
// already present in namespace. A nil namespace is treated as empty.
func newStem(stem string, namespace map[string]struct{}) *Stem {
	return &Stem{
		taken: namespace,
		stem:  stem,
	}
}

// Stem generates local variable names that do not clash inside one
// generated function.
type Stem struct {
	taken map[string]struct{}
	stem  string
	last  int
}

// Next returns the next free name and reserves it.
func (s *Stem) Next() string {
	if s.taken == nil {
		s.taken = make(map[string]struct{})
	}

	for {
		s.last++
		name := s.stem + strconv.Itoa(s.last)

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}
