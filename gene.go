package keen

import "math/rand"

// Gene is the atomic unit of genetic information: it carries one allele
// value of type T and knows how to verify, duplicate, and mutate itself.
//
//   - Verify reports whether the gene's current value satisfies its filter.
//   - DuplicateWithValue returns a gene identical in range/filter but
//     carrying v.
//   - Mutate returns a new gene with a freshly generated, filter-accepted
//     value.
type Gene[T any] interface {
	Value() T
	Verify() bool
	DuplicateWithValue(v T) Gene[T]
	Mutate(rng *rand.Rand) (Gene[T], error)
}

// Uninhabited is an optional capability a Gene may implement to declare
// that its value set is provably empty, letting Mutate fail fast with
// ErrAbsurdOperation instead of exhausting its rejection-sampling attempts.
type Uninhabited interface {
	Uninhabited() bool
}

const maxMutateAttempts = 1000

func mutateByRejection[T any](rng *rand.Rand, filter Filter[T], generate func(*rand.Rand) T) (T, error) {
	var v T
	for i := 0; i < maxMutateAttempts; i++ {
		v = generate(rng)
		if filter.accepts(v) {
			return v, nil
		}
	}
	var zero T
	return zero, ErrAbsurdOperation
}

// IntGene holds one integer allele within an optional closed Range and
// behind an optional Filter.
type IntGene[T Integer] struct {
	value  T
	rang   Range[T]
	filter Filter[T]
}

// NewIntGene constructs an IntGene with the given value, range and filter.
// A zero-value Range means "unbounded"; use NewRange to bound it.
func NewIntGene[T Integer](value T, rang Range[T], filter Filter[T]) IntGene[T] {
	return IntGene[T]{value: value, rang: rang, filter: filter}
}

func (g IntGene[T]) Value() T { return g.value }

func (g IntGene[T]) Verify() bool {
	return g.rang.Contains(g.value) && g.filter.accepts(g.value)
}

func (g IntGene[T]) DuplicateWithValue(v T) Gene[T] {
	return IntGene[T]{value: v, rang: g.rang, filter: g.filter}
}

func (g IntGene[T]) Uninhabited() bool {
	if !g.rang.IsSet() || g.filter == nil {
		return false
	}
	for v := g.rang.Min; v <= g.rang.Max; v++ {
		if g.filter(v) {
			return false
		}
	}
	return true
}

func (g IntGene[T]) Mutate(rng *rand.Rand) (Gene[T], error) {
	if g.Uninhabited() {
		return nil, ErrAbsurdOperation
	}
	v, err := mutateByRejection(rng, g.filter, func(r *rand.Rand) T {
		if !g.rang.IsSet() {
			return T(r.Int63())
		}
		span := int64(g.rang.Max) - int64(g.rang.Min) + 1
		if span <= 0 {
			return g.rang.Min
		}
		return T(int64(g.rang.Min) + r.Int63n(span))
	})
	if err != nil {
		return nil, err
	}
	return IntGene[T]{value: v, rang: g.rang, filter: g.filter}, nil
}

// FloatGene holds one real-valued allele within an optional closed Range
// and behind an optional Filter.
type FloatGene[T Float] struct {
	value  T
	rang   Range[T]
	filter Filter[T]
}

func NewFloatGene[T Float](value T, rang Range[T], filter Filter[T]) FloatGene[T] {
	return FloatGene[T]{value: value, rang: rang, filter: filter}
}

func (g FloatGene[T]) Value() T { return g.value }

func (g FloatGene[T]) Verify() bool {
	return g.rang.Contains(g.value) && g.filter.accepts(g.value)
}

func (g FloatGene[T]) DuplicateWithValue(v T) Gene[T] {
	return FloatGene[T]{value: v, rang: g.rang, filter: g.filter}
}

func (g FloatGene[T]) Mutate(rng *rand.Rand) (Gene[T], error) {
	v, err := mutateByRejection(rng, g.filter, func(r *rand.Rand) T {
		if !g.rang.IsSet() {
			return T(r.NormFloat64())
		}
		return T(float64(g.rang.Min) + r.Float64()*float64(g.rang.Max-g.rang.Min))
	})
	if err != nil {
		return nil, err
	}
	return FloatGene[T]{value: v, rang: g.rang, filter: g.filter}, nil
}

// BoolGene holds one boolean allele behind an optional Filter.
type BoolGene struct {
	value  bool
	filter Filter[bool]
}

func NewBoolGene(value bool, filter Filter[bool]) BoolGene {
	return BoolGene{value: value, filter: filter}
}

func (g BoolGene) Value() bool { return g.value }

func (g BoolGene) Verify() bool { return g.filter.accepts(g.value) }

func (g BoolGene) DuplicateWithValue(v bool) Gene[bool] {
	return BoolGene{value: v, filter: g.filter}
}

func (g BoolGene) Mutate(rng *rand.Rand) (Gene[bool], error) {
	v, err := mutateByRejection(rng, g.filter, func(r *rand.Rand) bool { return r.Intn(2) == 1 })
	if err != nil {
		return nil, err
	}
	return BoolGene{value: v, filter: g.filter}, nil
}

// RuneGene holds one character allele drawn from an explicit alphabet and
// behind an optional Filter. An empty alphabet means "any rune".
type RuneGene struct {
	value    rune
	alphabet []rune
	filter   Filter[rune]
}

func NewRuneGene(value rune, alphabet []rune, filter Filter[rune]) RuneGene {
	return RuneGene{value: value, alphabet: alphabet, filter: filter}
}

func (g RuneGene) Value() rune { return g.value }

func (g RuneGene) Verify() bool { return g.filter.accepts(g.value) }

func (g RuneGene) DuplicateWithValue(v rune) Gene[rune] {
	return RuneGene{value: v, alphabet: g.alphabet, filter: g.filter}
}

func (g RuneGene) Mutate(rng *rand.Rand) (Gene[rune], error) {
	v, err := mutateByRejection(rng, g.filter, func(r *rand.Rand) rune {
		if len(g.alphabet) == 0 {
			return rune('a' + r.Intn(26))
		}
		return g.alphabet[r.Intn(len(g.alphabet))]
	})
	if err != nil {
		return nil, err
	}
	return RuneGene{value: v, alphabet: g.alphabet, filter: g.filter}, nil
}

// TreeGene is the extension point for tree-based genetic-programming nodes.
// Concrete program-node variants are out of scope for this module; callers
// implementing their own domain only need to satisfy this interface for it
// to compose with every operator in the package.
type TreeGene[T any] interface {
	Gene[T]
	Children() []TreeGene[T]
}
