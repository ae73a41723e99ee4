package ledger

import "sort"

type groupKey struct {
	date string
	key  string
}

// EnforceSingleEntity keeps one entity per (date, account). Within a
// conflicting group the entity is chosen by the strong signal of its members,
// then by member count, then alphabetically. Records of other entities are dropped; records of the
// chosen entity are all kept, unmerged, in order.
func EnforceSingleEntity(records []Record) ([]Record, int) {
	groups := make(map[groupKey][]int)
	for i, r := range records {
		k := groupKey{date: r.Date.Format("2006-01-02"), key: r.Key}
		groups[k] = append(groups[k], i)
	}

	drop := make([]bool, len(records))
	dropped := 0
	for _, members := range groups {
		counts := make(map[string]int)
		for _, i := range members {
			counts[records[i].Entity]++
		}
		if len(counts) < 2 {
			continue
		}

		chosen := chooseEntity(records, members, counts)
		for _, i := range members {
			if records[i].Entity != chosen {
				drop[i] = true
				dropped++
			}
		}
	}

	if dropped == 0 {
		return records, 0
	}
	kept := make([]Record, 0, len(records)-dropped)
	for i, r := range records {
		if !drop[i] {
			kept = append(kept, r)
		}
	}
	return kept, dropped
}

func chooseEntity(records []Record, members []int, counts map[string]int) string {
	// (a) strong signal, only when it names an entity present in the group
	signals := make(map[string]int)
	for _, i := range members {
		s := records[i].Signal
		if _, present := counts[s]; s != "" && present {
			signals[s]++
		}
	}
	if len(signals) > 0 {
		return pickMax(signals)
	}

	// (b) majority, (c) alphabetical
	return pickMax(counts)
}

// pickMax returns the key with the highest count, the alphabetically first on ties.
func pickMax(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best
}
