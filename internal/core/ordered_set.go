package core

// OrderedSet keeps the first fragment added under each key and iterates in
// first-insertion order.
type OrderedSet struct {
	keys  []string
	texts map[string]string
}

func NewOrderedSet() *OrderedSet {
	return &OrderedSet{texts: make(map[string]string)}
}

func (s *OrderedSet) Has(key string) bool {
	_, ok := s.texts[key]
	return ok
}

// Add inserts text under key and reports whether the key was new. Adding an
// existing key is a no-op.
func (s *OrderedSet) Add(key, text string) bool {
	if s.Has(key) {
		return false
	}
	s.keys = append(s.keys, key)
	s.texts[key] = text
	return true
}

func (s *OrderedSet) Len() int {
	return len(s.keys)
}

func (s *OrderedSet) Fragments() []Fragment {
	out := make([]Fragment, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, Fragment{Key: k, Text: s.texts[k]})
	}
	return out
}
