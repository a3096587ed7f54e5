package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrSortSyntax        = errors.New("invalid sort syntax")
	ErrUnrecognizedField = errors.New("unrecognized sort field")
	ErrUnrecognizedOrder = errors.New("unrecognized sort order")
)

// Order is the direction of a sort key.
type Order int

const (
	Asc Order = iota
	Desc
)

func (o Order) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

// ParseOrder accepts asc, a, desc and d.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "a":
		return Asc, nil
	case "desc", "d":
		return Desc, nil
	}
	return Asc, fmt.Errorf("%w: %q", ErrUnrecognizedOrder, s)
}

// Comparator orders two items by one field. String names the field.
type Comparator[T any] interface {
	Compare(a, b T) int
	String() string
}

// SortKey is one field of a SortSpec.
type SortKey[T any] struct {
	Field Comparator[T]
	Order Order
}

// SortSpec orders items by its keys in turn: the first key that tells two
// items apart decides.
type SortSpec[T any] struct {
	keys []SortKey[T]
}

// NewSortSpec starts a spec with a single key.
func NewSortSpec[T any](field Comparator[T], order Order) SortSpec[T] {
	return SortSpec[T]{keys: []SortKey[T]{{Field: field, Order: order}}}
}

// Then returns a spec with an additional tie-breaking key.
func (s SortSpec[T]) Then(field Comparator[T], order Order) SortSpec[T] {
	keys := make([]SortKey[T], 0, len(s.keys)+1)
	keys = append(keys, s.keys...)
	keys = append(keys, SortKey[T]{Field: field, Order: order})
	return SortSpec[T]{keys: keys}
}

// Keys returns a copy of the sort keys.
func (s SortSpec[T]) Keys() []SortKey[T] {
	return append([]SortKey[T](nil), s.keys...)
}

// Compare applies the keys in order and returns the first non-zero result.
func (s SortSpec[T]) Compare(a, b T) int {
	for _, k := range s.keys {
		c := k.Field.Compare(a, b)
		if k.Order == Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// Sort orders items in place. Items comparing equal keep their relative order.
func (s SortSpec[T]) Sort(items []T) {
	slices.SortStableFunc(items, s.Compare)
}

// String renders the canonical textual form, omitting the default order.
func (s SortSpec[T]) String() string {
	parts := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		if k.Order == Asc {
			parts = append(parts, k.Field.String())
		} else {
			parts = append(parts, k.Field.String()+":"+k.Order.String())
		}
	}
	return strings.Join(parts, ",")
}

// ParseSortSpec parses comma-separated field[:order] components, resolving
// field names with parseField. parseField should wrap ErrUnrecognizedField
// for unknown names.
func ParseSortSpec[T any](s string, parseField func(string) (Comparator[T], error)) (SortSpec[T], error) {
	var spec SortSpec[T]
	for _, component := range strings.Split(s, ",") {
		component = strings.TrimSpace(component)
		if component == "" {
			return SortSpec[T]{}, fmt.Errorf("%w: empty component in %q", ErrSortSyntax, s)
		}
		parts := strings.Split(component, ":")
		if len(parts) > 2 {
			return SortSpec[T]{}, fmt.Errorf("%w: %q has more than one ':'", ErrSortSyntax, component)
		}
		field, err := parseField(strings.TrimSpace(parts[0]))
		if err != nil {
			return SortSpec[T]{}, err
		}
		order := Asc
		if len(parts) == 2 {
			if order, err = ParseOrder(parts[1]); err != nil {
				return SortSpec[T]{}, err
			}
		}
		spec.keys = append(spec.keys, SortKey[T]{Field: field, Order: order})
	}
	return spec, nil
}

// CompareOptional orders absent values first.
func CompareOptional[V any](a, b *V, cmp func(V, V) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp(*a, *b)
}
