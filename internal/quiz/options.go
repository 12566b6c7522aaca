package quiz

import "math/rand/v2"

// BuildOptions returns a shuffled option set containing correct exactly once
// plus distinct distractors drawn without replacement from pool.
//
// The width is clamped to the number of distinct keys available, so a pool
// smaller than width yields a shorter set instead of an error.
func BuildOptions(rng *rand.Rand, pool []Item, correct Item, width int) OptionSet {
	seen := map[string]bool{correct.Key(): true}
	distractors := make([]Item, 0, len(pool))
	for _, it := range pool {
		if seen[it.Key()] {
			continue
		}
		seen[it.Key()] = true
		distractors = append(distractors, it)
	}

	n := width - 1
	if n > len(distractors) {
		n = len(distractors)
	}
	if n < 0 {
		n = 0
	}

	// Partial Fisher-Yates: the first n slots end up a uniform sample.
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(distractors)-i)
		distractors[i], distractors[j] = distractors[j], distractors[i]
	}

	opts := make(OptionSet, 0, n+1)
	opts = append(opts, correct)
	opts = append(opts, distractors[:n]...)
	rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}

// pickOther samples uniformly from pool excluding items whose key is exclude.
// When nothing else is available the whole pool is used, so a one-item pool
// repeats its item rather than looping.
func pickOther(rng *rand.Rand, pool []Item, exclude string) Item {
	candidates := make([]Item, 0, len(pool))
	for _, it := range pool {
		if it.Key() != exclude {
			candidates = append(candidates, it)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}
	return candidates[rng.IntN(len(candidates))]
}
