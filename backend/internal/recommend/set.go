package recommend

// orderedSet is a set of game ids that remembers insertion order.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{items: []string{}, index: make(map[string]struct{})}
}

func (s *orderedSet) add(ids ...string) {
	for _, id := range ids {
		if _, ok := s.index[id]; ok {
			continue
		}
		s.index[id] = struct{}{}
		s.items = append(s.items, id)
	}
}

func (s *orderedSet) len() int {
	return len(s.items)
}

// narrowOrSeed intersects the set with ids, or fills it from ids when the
// set is empty.
func (s *orderedSet) narrowOrSeed(ids []string) {
	if len(s.items) == 0 {
		s.add(ids...)
		return
	}

	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	kept := s.items[:0]
	for _, id := range s.items {
		if _, ok := keep[id]; ok {
			kept = append(kept, id)
		} else {
			delete(s.index, id)
		}
	}
	s.items = kept
}
