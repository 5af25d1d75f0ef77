package store

import (
	"sort"
	"strings"
	"time"
)

// ListOptions controls filtering, ordering, and pagination of list calls.
// Filters apply first, ordering second, offset-then-limit last. A zero
// Limit means no limit.
type ListOptions struct {
	Limit  int
	Offset int

	// OrderBy names the field to sort on; a leading "-" sorts
	// descending. Field names match the JSON wire names. Unknown fields
	// are ignored; validate with FieldSet.Has at the boundary.
	OrderBy string

	// State, when non-empty, keeps only entities in that exact state.
	State string

	// ExecutionDateGTE / ExecutionDateLTE bound execution_date on kinds
	// that carry one.
	ExecutionDateGTE *time.Time
	ExecutionDateLTE *time.Time
}

// FieldSet maps orderable field names to their value extractors.
type FieldSet[T any] map[string]func(T) any

// Has reports whether field (with any "-" prefix stripped) is orderable.
func (f FieldSet[T]) Has(field string) bool {
	_, ok := f[strings.TrimPrefix(field, "-")]
	return ok
}

// orderBy stable-sorts items by the named field. Items already arrive in
// natural-key order, so equal sort keys keep a deterministic order.
func orderBy[T any](items []T, spec string, fields FieldSet[T]) {
	if spec == "" {
		return
	}
	desc := strings.HasPrefix(spec, "-")
	getter, ok := fields[strings.TrimPrefix(spec, "-")]
	if !ok {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		c := compareValues(getter(items[i]), getter(items[j]))
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// paginate slices items [offset, offset+limit). Offsets past the end
// yield an empty slice, never an error.
func paginate[T any](items []T, opts ListOptions) []T {
	if opts.Offset >= len(items) {
		return []T{}
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}

// compareValues orders the scalar types entity fields are made of.
// Mismatched or unordered types compare equal.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return av - bv
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case !av && bv:
				return -1
			case av && !bv:
				return 1
			}
			return 0
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case *time.Time:
		if bv, ok := b.(*time.Time); ok {
			switch {
			case av == nil && bv == nil:
				return 0
			case av == nil:
				return -1
			case bv == nil:
				return 1
			}
			return av.Compare(*bv)
		}
	case *float64:
		if bv, ok := b.(*float64); ok {
			switch {
			case av == nil && bv == nil:
				return 0
			case av == nil:
				return -1
			case bv == nil:
				return 1
			}
			return compareValues(*av, *bv)
		}
	}
	return 0
}
