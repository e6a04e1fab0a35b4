package rankings

import "sort"

// SelectTopN picks the n records with the lowest (ascending) or highest
// overall scores across the whole dataset, regardless of file order. Equal
// scores keep file order, so the first-seen record wins a contested slot.
// The result is ordered by score in the requested direction.
func SelectTopN(ds *Dataset, n int, ascending bool) ([]Record, error) {
	size := ds.Len()
	if n < 1 || n > size {
		return nil, &SelectorError{N: n, Size: size}
	}
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		x, y := ds.records[idx[a]].OverallScore, ds.records[idx[b]].OverallScore
		if ascending {
			return x < y
		}
		return x > y
	})
	out := make([]Record, n)
	for i := range out {
		out[i] = ds.records[idx[i]]
	}
	return out, nil
}
