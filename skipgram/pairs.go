package skipgram

import (
	"sort"
	"strconv"
)

// GroupBySubject collects record indices per subject. Groups come back in
// ascending subject order, numeric when both ids are integers; indices inside a
// group keep input order.
func GroupBySubject(records []IndexedRecord) []SubjectGroup {
	pos := make(map[string]int)
	var groups []SubjectGroup
	for _, rec := range records {
		i, ok := pos[rec.SubjectID]
		if !ok {
			i = len(groups)
			pos[rec.SubjectID] = i
			groups = append(groups, SubjectGroup{SubjectID: rec.SubjectID})
		}
		groups[i].Indices = append(groups[i].Indices, rec.Index)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return subjectLess(groups[i].SubjectID, groups[j].SubjectID)
	})
	return groups
}

func subjectLess(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}

// CountPairs returns n*(n-1) summed over all groups.
func CountPairs(groups []SubjectGroup) int64 {
	var total int64
	for _, g := range groups {
		n := int64(len(g.Indices))
		if n > 1 {
			total += n * (n - 1)
		}
	}
	return total
}

// PairIterator lazily enumerates every ordered pair of distinct positions within
// each subject group. It is single pass; Reset rewinds to the first group.
type PairIterator struct {
	groups  []SubjectGroup
	g, i, j int
	emitted int64
	total   int64
}

// NewPairIterator creates an iterator over groups. The slice is not copied.
func NewPairIterator(groups []SubjectGroup) *PairIterator {
	return &PairIterator{groups: groups, total: CountPairs(groups)}
}

// Next returns the next pair, or false once every group is consumed.
func (it *PairIterator) Next() (Pair, bool) {
	for it.g < len(it.groups) {
		idx := it.groups[it.g].Indices
		n := len(idx)
		for it.i < n {
			for it.j < n {
				i, j := it.i, it.j
				it.j++
				if i == j {
					continue
				}
				it.emitted++
				return Pair{Center: idx[i], Target: idx[j]}, true
			}
			it.i++
			it.j = 0
		}
		it.g++
		it.i, it.j = 0, 0
	}
	return Pair{}, false
}

// Reset rewinds the iterator to the first pair of the first group.
func (it *PairIterator) Reset() {
	it.g, it.i, it.j = 0, 0, 0
	it.emitted = 0
}

// Total is the number of pairs a full pass yields.
func (it *PairIterator) Total() int64 {
	return it.total
}

// Emitted is the number of pairs returned since construction or the last Reset.
func (it *PairIterator) Emitted() int64 {
	return it.emitted
}
