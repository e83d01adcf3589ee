package framework

// Capabilities is a list of strings describing optional features of the application
// under test. The meanings of the strings are defined by the appdef package; this type
// only provides the set operations that the rest of the framework needs.
type Capabilities []string

// Has returns true if the specified string appears in the list.
func (cs Capabilities) Has(name string) bool {
	for _, c := range cs {
		if c == name {
			return true
		}
	}
	return false
}

// HasAny returns true if at least one of the specified strings appears in the list.
func (cs Capabilities) HasAny(names ...string) bool {
	for _, name := range names {
		if cs.Has(name) {
			return true
		}
	}
	return false
}

// HasAll returns true if every one of the specified strings appears in the list.
func (cs Capabilities) HasAll(names ...string) bool {
	for _, name := range names {
		if !cs.Has(name) {
			return false
		}
	}
	return true
}
