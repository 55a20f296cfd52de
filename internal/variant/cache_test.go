package variant_test

import (
	"testing"

	"github.com/liquidbio/ctdna-lab/internal/variant"
)

// countingGenerate returns a generate func that tracks how often it ran.
func countingGenerate(seed int64, calls *int) func() []variant.Record {
	return func() []variant.Record {
		*calls++
		return variant.NewGenerator(variant.WithSeed(seed)).Generate()
	}
}

func TestDatasetCache_MemoizesPerSeed(t *testing.T) {
	cache := variant.NewDatasetCache(3)
	calls := 0

	first := cache.GetOrGenerate(42, countingGenerate(42, &calls))
	second := cache.GetOrGenerate(42, countingGenerate(42, &calls))

	if calls != 1 {
		t.Fatalf("expected one generation, got %d", calls)
	}
	if &first[0] != &second[0] {
		t.Error("cache hit returned a different dataset")
	}
}

func TestDatasetCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := variant.NewDatasetCache(2)
	counts := map[int64]int{}
	get := func(seed int64) {
		calls := counts[seed]
		cache.GetOrGenerate(seed, countingGenerate(seed, &calls))
		counts[seed] = calls
	}

	get(1)
	get(2)
	get(1) // refresh seed 1, making seed 2 the eviction candidate
	get(3) // evicts seed 2

	if cache.Len() != 2 {
		t.Fatalf("expected 2 cached datasets, got %d", cache.Len())
	}

	get(1)
	if counts[1] != 1 {
		t.Errorf("seed 1 regenerated despite being recently used (%d calls)", counts[1])
	}
	get(2)
	if counts[2] != 2 {
		t.Errorf("expected seed 2 to have been evicted and regenerated, got %d calls", counts[2])
	}
}

func TestDatasetCache_Clear(t *testing.T) {
	cache := variant.NewDatasetCache(3)
	calls := 0

	cache.GetOrGenerate(42, countingGenerate(42, &calls))
	cache.Clear()

	if cache.Len() != 0 {
		t.Fatalf("expected empty cache after Clear, got %d entries", cache.Len())
	}

	cache.GetOrGenerate(42, countingGenerate(42, &calls))
	if calls != 2 {
		t.Errorf("expected regeneration after Clear, got %d calls", calls)
	}
}

func TestDatasetCache_DefaultsInvalidCapacity(t *testing.T) {
	cache := variant.NewDatasetCache(0)
	calls := 0

	for seed := int64(1); seed <= 5; seed++ {
		cache.GetOrGenerate(seed, countingGenerate(seed, &calls))
	}
	if cache.Len() != variant.DefaultCacheSize {
		t.Errorf("expected cache bounded to %d, got %d", variant.DefaultCacheSize, cache.Len())
	}
}
