package quiz

// Item is a single quiz subject. Keys are unique within a variant's pool.
type Item interface {
	// Key is the identity used for answer comparison and persistence.
	Key() string

	// Label is the human-readable answer text.
	Label() string
}

// OptionSet is the ordered list of choices shown for the current item.
type OptionSet []Item

// Contains reports whether an option with the given key is present.
func (o OptionSet) Contains(key string) bool {
	return o.Index(key) >= 0
}

// Index returns the position of key in the set, or -1.
func (o OptionSet) Index(key string) int {
	for i, it := range o {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

// Keys returns the option keys in display order.
func (o OptionSet) Keys() []string {
	keys := make([]string, len(o))
	for i, it := range o {
		keys[i] = it.Key()
	}
	return keys
}
