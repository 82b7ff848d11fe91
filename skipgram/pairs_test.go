package skipgram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/codepairs/skipgram"
)

func drain(it *skipgram.PairIterator) []skipgram.Pair {
	var out []skipgram.Pair
	for {
		p, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}

func indexed(subject string, indices ...int) []skipgram.IndexedRecord {
	out := make([]skipgram.IndexedRecord, len(indices))
	for i, idx := range indices {
		out[i] = skipgram.IndexedRecord{Record: skipgram.Record{SubjectID: subject}, Index: idx}
	}
	return out
}

func TestPairIterator_ScenarioOrder(t *testing.T) {
	t.Parallel()

	groups := skipgram.GroupBySubject(indexed("S1", 0, 1, 0))
	require.Len(t, groups, 1)
	assert.Equal(t, []int{0, 1, 0}, groups[0].Indices)

	// Position pairs (0,1) (0,2) (1,0) (1,2) (2,0) (2,1).
	assert.Equal(t, []skipgram.Pair{
		{Center: 0, Target: 1},
		{Center: 0, Target: 0},
		{Center: 1, Target: 0},
		{Center: 1, Target: 0},
		{Center: 0, Target: 0},
		{Center: 0, Target: 1},
	}, drain(skipgram.NewPairIterator(groups)))
}

func TestPairIterator_CountPerGroupSize(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 7; n++ {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = 100 + i
		}
		groups := []skipgram.SubjectGroup{{SubjectID: "s", Indices: indices}}
		it := skipgram.NewPairIterator(groups)
		pairs := drain(it)

		want := n * (n - 1)
		assert.Len(t, pairs, want, "n=%d", n)
		assert.Equal(t, int64(want), it.Total(), "n=%d", n)
		assert.Equal(t, int64(want), it.Emitted(), "n=%d", n)
		for _, p := range pairs {
			assert.NotEqual(t, p.Center, p.Target, "distinct values imply distinct positions for n=%d", n)
		}
	}
}

func TestPairIterator_IdenticalCodesStillPair(t *testing.T) {
	t.Parallel()

	groups := []skipgram.SubjectGroup{{SubjectID: "s", Indices: []int{4, 4, 4}}}
	pairs := drain(skipgram.NewPairIterator(groups))
	require.Len(t, pairs, 6)
	for _, p := range pairs {
		assert.Equal(t, skipgram.Pair{Center: 4, Target: 4}, p)
	}
}

func TestPairIterator_SkipsSmallGroupsAndStaysExhausted(t *testing.T) {
	t.Parallel()

	groups := []skipgram.SubjectGroup{
		{SubjectID: "a", Indices: nil},
		{SubjectID: "b", Indices: []int{9}},
		{SubjectID: "c", Indices: []int{1, 2}},
		{SubjectID: "d", Indices: []int{3}},
	}
	it := skipgram.NewPairIterator(groups)
	assert.Equal(t, []skipgram.Pair{{Center: 1, Target: 2}, {Center: 2, Target: 1}}, drain(it))

	_, ok := it.Next()
	assert.False(t, ok, "single pass: no replay without Reset")

	it.Reset()
	assert.Equal(t, int64(0), it.Emitted())
	assert.Len(t, drain(it), 2)
}

func TestGroupBySubject_Ordering(t *testing.T) {
	t.Parallel()

	var records []skipgram.IndexedRecord
	records = append(records, indexed("10", 1)...)
	records = append(records, indexed("9", 2)...)
	records = append(records, indexed("10", 3)...)
	records = append(records, indexed("b", 4)...)
	records = append(records, indexed("9", 5)...)
	records = append(records, indexed("a", 6)...)

	groups := skipgram.GroupBySubject(records)
	require.Len(t, groups, 4)
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.SubjectID
	}
	assert.Equal(t, []string{"9", "10", "a", "b"}, ids)
	assert.Equal(t, []int{2, 5}, groups[0].Indices)
	assert.Equal(t, []int{1, 3}, groups[1].Indices)
}

func TestCountPairs(t *testing.T) {
	t.Parallel()

	groups := []skipgram.SubjectGroup{
		{Indices: []int{1, 2, 3}},
		{Indices: []int{1}},
		{Indices: []int{1, 2, 3, 4}},
	}
	assert.Equal(t, int64(6+12), skipgram.CountPairs(groups))
}
