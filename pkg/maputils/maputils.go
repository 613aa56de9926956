// Package maputils has generic helpers over plain Go maps and entry slices.
// Plain maps have no observable order; helpers that need determinism sort
// keys first and say so.
package maputils

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// MapMap maps both keys and values of m. On a key collision the surviving
// value is unspecified, matching map iteration order.
func MapMap[K1 comparable, V1 any, K2 comparable, V2 any](m map[K1]V1, f func(K1, V1) (K2, V2)) map[K2]V2 {
	res := make(map[K2]V2, len(m))
	for k, v := range m {
		k2, v2 := f(k, v)
		res[k2] = v2
	}
	return res
}

// MapValues maps the values of m, keeping keys.
func MapValues[K comparable, V1, V2 any](m map[K]V1, f func(K, V1) V2) map[K]V2 {
	res := make(map[K]V2, len(m))
	for k, v := range m {
		res[k] = f(k, v)
	}
	return res
}

// FilterMap keeps the entries of m for which pred holds.
func FilterMap[K comparable, V any](m map[K]V, pred func(K, V) bool) map[K]V {
	res := make(map[K]V)
	for k, v := range m {
		if pred(k, v) {
			res[k] = v
		}
	}
	return res
}

// InvertMap swaps keys and values. On duplicate values the surviving key is
// unspecified.
func InvertMap[K, V comparable](m map[K]V) map[V]K {
	res := make(map[V]K, len(m))
	for k, v := range m {
		res[v] = k
	}
	return res
}

// EntriesOf snapshots m as pairs in ascending key order.
func EntriesOf[K constraints.Ordered, V any](m map[K]V) []Pair[K, V] {
	keys := maps.Keys(m)
	slices.Sort(keys)
	res := make([]Pair[K, V], 0, len(m))
	for _, k := range keys {
		res = append(res, Pair[K, V]{Key: k, Value: m[k]})
	}
	return res
}

// FromEntriesOf builds a map from pairs, later duplicates overwriting earlier
// ones.
func FromEntriesOf[K comparable, V any](pairs []Pair[K, V]) map[K]V {
	res := make(map[K]V, len(pairs))
	for _, p := range pairs {
		res[p.Key] = p.Value
	}
	return res
}

// MapSlice maps a slice elementwise.
func MapSlice[T, R any](s []T, f func(T) R) []R {
	res := make([]R, len(s))
	for i, v := range s {
		res[i] = f(v)
	}
	return res
}
