package assignment

import "slices"

// Diff resultado de comparar dos conjuntos de identificadores.
type Diff[T comparable] struct {
	ToAdd    []T
	ToRemove []T
}

// Empty indica que no hay cambios.
func (d Diff[T]) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// Len número total de operaciones que produce el diff.
func (d Diff[T]) Len() int {
	return len(d.ToAdd) + len(d.ToRemove)
}

// DiffSets calcula ToAdd = desired − previous y ToRemove = previous − desired.
// Los duplicados se ignoran y el resultado no depende del orden de entrada:
// cada lista sale en el orden de primera aparición dentro de su conjunto de origen.
func DiffSets[T comparable](previous, desired []T) Diff[T] {
	prev := toSet(previous)
	want := toSet(desired)
	var d Diff[T]
	for _, id := range dedupe(desired) {
		if _, ok := prev[id]; !ok {
			d.ToAdd = append(d.ToAdd, id)
		}
	}
	for _, id := range dedupe(previous) {
		if _, ok := want[id]; !ok {
			d.ToRemove = append(d.ToRemove, id)
		}
	}
	return d
}

// Apply devuelve base con el diff aplicado (sin duplicados).
func Apply[T comparable](base []T, d Diff[T]) []T {
	removed := toSet(d.ToRemove)
	out := make([]T, 0, len(base)+len(d.ToAdd))
	for _, id := range dedupe(base) {
		if _, gone := removed[id]; !gone {
			out = append(out, id)
		}
	}
	for _, id := range d.ToAdd {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func toSet[T comparable](ids []T) map[T]struct{} {
	s := make(map[T]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func dedupe[T comparable](ids []T) []T {
	seen := make(map[T]struct{}, len(ids))
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
