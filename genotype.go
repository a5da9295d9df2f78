package keen

// Genotype is an ordered sequence of chromosomes representing one
// candidate's genetic material. Chromosomes may differ in shape across the
// sequence, but each one is internally uniform in gene variant.
type Genotype[T any] struct {
	chromosomes []Chromosome[T]
}

// NewGenotype builds a Genotype from an already-constructed chromosome
// slice, copying it defensively.
func NewGenotype[T any](chromosomes []Chromosome[T]) Genotype[T] {
	cp := make([]Chromosome[T], len(chromosomes))
	copy(cp, chromosomes)
	return Genotype[T]{chromosomes: cp}
}

func (g Genotype[T]) Len() int { return len(g.chromosomes) }

// At returns the chromosome at index i, or an InvalidIndexError if i is
// outside [0, Len()).
func (g Genotype[T]) At(i int) (Chromosome[T], error) {
	if i < 0 || i >= len(g.chromosomes) {
		return Chromosome[T]{}, &InvalidIndexError{Index: i, Size: len(g.chromosomes)}
	}
	return g.chromosomes[i], nil
}

// Chromosomes returns a defensive copy of the genotype's chromosome
// sequence.
func (g Genotype[T]) Chromosomes() []Chromosome[T] {
	cp := make([]Chromosome[T], len(g.chromosomes))
	copy(cp, g.chromosomes)
	return cp
}

// Verify reports true if the genotype is empty or every chromosome
// verifies.
func (g Genotype[T]) Verify() bool {
	for _, c := range g.chromosomes {
		if !c.Verify() {
			return false
		}
	}
	return true
}

// Flatten concatenates every gene's value across every chromosome, in
// order.
func (g Genotype[T]) Flatten() []T {
	out := make([]T, 0)
	for _, c := range g.chromosomes {
		out = append(out, c.Values()...)
	}
	return out
}

// DuplicateWithChromosomes returns a genotype carrying the given
// chromosome list in place of this one's.
func (g Genotype[T]) DuplicateWithChromosomes(chromosomes []Chromosome[T]) Genotype[T] {
	return NewGenotype(chromosomes)
}
