package quiz

import "testing"

func TestBuildOptions_Invariants(t *testing.T) {
	pool := items("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
	rng := testRand(1)

	for _, width := range []int{1, 2, 4, 5} {
		for i := 0; i < 200; i++ {
			correct := pool[rng.IntN(len(pool))]
			opts := BuildOptions(rng, pool, correct, width)

			if len(opts) != width {
				t.Fatalf("width %d: got %d options", width, len(opts))
			}
			seen := map[string]int{}
			for _, o := range opts {
				seen[o.Key()]++
			}
			for k, n := range seen {
				if n != 1 {
					t.Fatalf("width %d: option %q appears %d times", width, k, n)
				}
			}
			if seen[correct.Key()] != 1 {
				t.Fatalf("width %d: correct item %q missing from %v", width, correct.Key(), opts.Keys())
			}
		}
	}
}

func TestBuildOptions_FullPool(t *testing.T) {
	pool := items("A", "B", "C", "D", "E")
	opts := BuildOptions(testRand(7), pool, pool[2], 5)

	if len(opts) != 5 {
		t.Fatalf("got %d options, want 5", len(opts))
	}
	for _, it := range pool {
		if !opts.Contains(it.Key()) {
			t.Errorf("option set %v missing %q", opts.Keys(), it.Key())
		}
	}
}

func TestBuildOptions_ClampsToPool(t *testing.T) {
	pool := items("a", "b", "c")
	opts := BuildOptions(testRand(3), pool, pool[0], 5)

	if len(opts) != 3 {
		t.Errorf("got %d options, want 3 (clamped)", len(opts))
	}
	if !opts.Contains("a") {
		t.Error("correct item missing")
	}
}

func TestBuildOptions_SingleItemPool(t *testing.T) {
	pool := items("only")
	opts := BuildOptions(testRand(3), pool, pool[0], 4)

	if len(opts) != 1 || opts[0].Key() != "only" {
		t.Errorf("got %v, want [only]", opts.Keys())
	}
}

func TestBuildOptions_IgnoresDuplicateKeys(t *testing.T) {
	pool := items("a", "b", "b", "c", "c", "c")
	opts := BuildOptions(testRand(9), pool, testItem("a"), 5)

	if len(opts) != 3 {
		t.Errorf("got %v, want 3 distinct options", opts.Keys())
	}
}

func TestPickOther(t *testing.T) {
	pool := items("a", "b", "c")
	rng := testRand(11)

	counts := map[string]int{}
	for i := 0; i < 600; i++ {
		it := pickOther(rng, pool, "b")
		if it.Key() == "b" {
			t.Fatal("pickOther returned the excluded item")
		}
		counts[it.Key()]++
	}
	if counts["a"] == 0 || counts["c"] == 0 {
		t.Errorf("expected both remaining items to be picked, got %v", counts)
	}
}

func TestPickOther_SingleItemRepeats(t *testing.T) {
	pool := items("solo")
	if got := pickOther(testRand(1), pool, "solo"); got.Key() != "solo" {
		t.Errorf("got %q, want solo", got.Key())
	}
}

func TestOptionSetIndex(t *testing.T) {
	opts := OptionSet(items("x", "y", "z"))

	tests := []struct {
		key  string
		want int
	}{
		{"x", 0},
		{"z", 2},
		{"w", -1},
	}
	for _, tt := range tests {
		if got := opts.Index(tt.key); got != tt.want {
			t.Errorf("Index(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}
