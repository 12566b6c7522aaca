package quiz

import (
	"math/rand/v2"
	"strings"
)

// testItem is a minimal Item for tests; its key and label are the same string.
type testItem string

func (t testItem) Key() string   { return string(t) }
func (t testItem) Label() string { return strings.ToUpper(string(t)) }

func items(keys ...string) []Item {
	out := make([]Item, len(keys))
	for i, k := range keys {
		out[i] = testItem(k)
	}
	return out
}

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}
