package keen

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// Ordered, Integer and Float are the numeric constraints used throughout
// the gene/chromosome hierarchy. Ordered aliases the standard library's
// cmp.Ordered; Integer and Float come from golang.org/x/exp/constraints,
// which the standard library does not yet provide.
type Ordered = cmp.Ordered
type Integer = constraints.Integer
type Float = constraints.Float

// Filter is the authoritative acceptability predicate for a gene's value.
// A nil Filter accepts every value.
type Filter[T any] func(T) bool

func (f Filter[T]) accepts(v T) bool {
	if f == nil {
		return true
	}
	return f(v)
}

// Range is a closed interval [Min, Max] over an ordered type, used to bound
// the values a numeric gene may take. A zero-value Range with Min == Max ==
// zero-value is treated as "no explicit range" by the factories that embed
// it; use NewRange to build one explicitly.
type Range[T Ordered] struct {
	Min, Max T
	set      bool
}

// NewRange builds an explicit closed range [min, max].
func NewRange[T Ordered](min, max T) Range[T] {
	return Range[T]{Min: min, Max: max, set: true}
}

func (r Range[T]) IsSet() bool { return r.set }

func (r Range[T]) Contains(v T) bool {
	if !r.set {
		return true
	}
	return v >= r.Min && v <= r.Max
}
