package dsl

// note holds the comments attached to a declaration head or a config entry.
type note struct {
	leading  []comment
	trailing string
}

type declNotes struct {
	head    note
	gap     bool // empty line between the leading comments and the type
	entries map[string]*note
	inner   []comment // before the closing brace
	closing string    // after the closing brace
}

// docNotes carries the comments of a source document alongside its
// instances. decls is parallel to the compiled instance list.
type docNotes struct {
	decls []*declNotes
	tail  []comment
}

var emptyDeclNotes declNotes

func (d *docNotes) decl(i int) *declNotes {
	if d == nil || i >= len(d.decls) {
		return &emptyDeclNotes
	}
	return d.decls[i]
}

func (d *declNotes) addEntry(key string, n *note) {
	if d.entries == nil {
		d.entries = map[string]*note{}
	}
	// a repeated key keeps the comments of every occurrence
	if prev, ok := d.entries[key]; ok {
		leading := append([]comment{}, prev.leading...)
		if prev.trailing != "" {
			leading = append(leading, comment{text: prev.trailing})
		}
		n.leading = append(leading, n.leading...)
	}
	d.entries[key] = n
}
