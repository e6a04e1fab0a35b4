package rankings

import "sort"

// CountryCount is the number of records sharing one location.
type CountryCount struct {
	Country string `json:"country" yaml:"country"`
	Count   int    `json:"count" yaml:"count"`
}

// AggregateByCountry counts records per location in order of first
// appearance and keeps groups with at least minCount records. The result is
// never nil.
func AggregateByCountry(ds *Dataset, minCount int) []CountryCount {
	if ds.Empty() {
		return []CountryCount{}
	}
	index := make(map[string]int)
	var all []CountryCount
	for _, r := range ds.records {
		i, ok := index[r.Location]
		if !ok {
			i = len(all)
			index[r.Location] = i
			all = append(all, CountryCount{Country: r.Location})
		}
		all[i].Count++
	}
	out := make([]CountryCount, 0, len(all))
	for _, c := range all {
		if c.Count >= minCount {
			out = append(out, c)
		}
	}
	return out
}

// SortByCount returns a copy ordered by descending count. Equal counts keep
// their input order.
func SortByCount(counts []CountryCount) []CountryCount {
	out := make([]CountryCount, len(counts))
	copy(out, counts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
