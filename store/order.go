package store

import "sort"

// sortByOrder sorts enum values by their ladder position; unknown values go last
// in lexical order.
func sortByOrder[T ~string](values []T, order map[T]int) {
	sort.SliceStable(values, func(i, j int) bool {
		oi, iok := order[values[i]]
		oj, jok := order[values[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return values[i] < values[j]
		}
	})
}
