// Package query holds the generic filter and sort engine shared by every
// entity type. Entity-specific vocabularies live in package model.
package query

import (
	"strings"
	"time"
)

// Filter is a predicate over items of type T, evaluated against the
// current time so relative ranges like "today" resolve consistently
// within one query.
type Filter[T any] interface {
	Matches(item T, now time.Time) bool
}

// All matches everything.
type All[T any] struct{}

func (All[T]) Matches(T, time.Time) bool { return true }

func (All[T]) String() string { return "all" }

// FilterSpec is an ordered AND-list of filters. The zero value, like a
// spec holding a single All, matches everything.
type FilterSpec[T any] struct {
	filters []Filter[T]
}

// NewFilterSpec returns a passthrough spec.
func NewFilterSpec[T any]() FilterSpec[T] {
	return FilterSpec[T]{filters: []Filter[T]{All[T]{}}}
}

// Where returns a spec holding exactly the given filters.
func Where[T any](filters ...Filter[T]) FilterSpec[T] {
	var spec FilterSpec[T]
	for _, f := range filters {
		spec = spec.And(f)
	}
	return spec
}

// And returns a spec that additionally requires f. Adding to a passthrough
// replaces it.
func (s FilterSpec[T]) And(f Filter[T]) FilterSpec[T] {
	if s.IsPassthrough() {
		return FilterSpec[T]{filters: []Filter[T]{f}}
	}
	filters := make([]Filter[T], 0, len(s.filters)+1)
	filters = append(filters, s.filters...)
	filters = append(filters, f)
	return FilterSpec[T]{filters: filters}
}

// IsPassthrough reports whether the spec places no constraint on items.
func (s FilterSpec[T]) IsPassthrough() bool {
	if len(s.filters) == 0 {
		return true
	}
	if len(s.filters) == 1 {
		_, ok := s.filters[0].(All[T])
		return ok
	}
	return false
}

// Matches reports whether item satisfies every filter.
func (s FilterSpec[T]) Matches(item T, now time.Time) bool {
	for _, f := range s.filters {
		if !f.Matches(item, now) {
			return false
		}
	}
	return true
}

// Any reports whether any contained filter satisfies pred.
func (s FilterSpec[T]) Any(pred func(Filter[T]) bool) bool {
	for _, f := range s.filters {
		if pred(f) {
			return true
		}
	}
	return false
}

// Filters returns a copy of the contained filters.
func (s FilterSpec[T]) Filters() []Filter[T] {
	return append([]Filter[T](nil), s.filters...)
}

// Apply returns the items matching the spec, in their original order.
func (s FilterSpec[T]) Apply(items []T, now time.Time) []T {
	var out []T
	for _, item := range items {
		if s.Matches(item, now) {
			out = append(out, item)
		}
	}
	return out
}

func (s FilterSpec[T]) String() string {
	if s.IsPassthrough() {
		return "all"
	}
	parts := make([]string, 0, len(s.filters))
	for _, f := range s.filters {
		if str, ok := f.(interface{ String() string }); ok {
			parts = append(parts, str.String())
		} else {
			parts = append(parts, "?")
		}
	}
	return strings.Join(parts, " and ")
}

// TagsIntersect reports whether have and want share at least one tag.
func TagsIntersect(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
