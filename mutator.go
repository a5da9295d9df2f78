package keen

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// baseMutator implements the individual- and chromosome-level Bernoulli
// gates shared by every mutator variant (spec levels 1-2 of the
// three-level probabilistic gating scheme; gene-level mutators add their
// own geneRate on top).
type baseMutator struct {
	individualRate float64
	chromosomeRate float64
}

func newBaseMutator(individualRate, chromosomeRate float64) (baseMutator, error) {
	var violations []error
	if individualRate < 0 || individualRate > 1 {
		violations = append(violations, mutatorConfigErrorf("individual rate (%v) must be in 0.0..1.0", individualRate))
	}
	if chromosomeRate < 0 || chromosomeRate > 1 {
		violations = append(violations, mutatorConfigErrorf("chromosome rate (%v) must be in 0.0..1.0", chromosomeRate))
	}
	if len(violations) > 0 {
		return baseMutator{}, violations[0]
	}
	return baseMutator{individualRate: individualRate, chromosomeRate: chromosomeRate}, nil
}

func checkGeneRate(geneRate float64) error {
	if geneRate < 0 || geneRate > 1 {
		return mutatorConfigErrorf("gene rate (%v) must be in 0.0..1.0", geneRate)
	}
	return nil
}

// eachSelectedGene walks pop under the nested-Bernoulli schedule (draw u
// for the individual, then per chromosome, then per gene) and hands every
// selected gene to mutate, replacing it in a freshly built population.
func eachSelectedGene[T any](pop Population[T], base baseMutator, geneRate float64, rng *rand.Rand, mutate func(Gene[T]) (Gene[T], error)) (Population[T], error) {
	out := make(Population[T], len(pop))
	for i, ind := range pop {
		if rng.Float64() >= base.individualRate {
			out[i] = ind
			continue
		}
		chromosomes := ind.Genotype.Chromosomes()
		changed := make([]Chromosome[T], len(chromosomes))
		for ci, chromosome := range chromosomes {
			if rng.Float64() >= base.chromosomeRate {
				changed[ci] = chromosome
				continue
			}
			genes := chromosome.Genes()
			newGenes := make([]Gene[T], len(genes))
			for gi, gene := range genes {
				if rng.Float64() >= geneRate {
					newGenes[gi] = gene
					continue
				}
				mutated, err := mutate(gene)
				if err != nil {
					return nil, err
				}
				newGenes[gi] = mutated
			}
			changed[ci] = chromosome.DuplicateWithGenes(newGenes)
		}
		out[i] = Individual[T]{Genotype: ind.Genotype.DuplicateWithChromosomes(changed), Fitness: ind.Fitness, Evaluated: ind.Evaluated}
	}
	return out, nil
}

// BitFlipMutator flips boolean genes. Constructed with MutatorConfigError
// if any rate lies outside [0,1].
type BitFlipMutator struct {
	base     baseMutator
	geneRate float64
}

func NewBitFlipMutator(individualRate, chromosomeRate, geneRate float64) (BitFlipMutator, error) {
	base, err := newBaseMutator(individualRate, chromosomeRate)
	if err != nil {
		return BitFlipMutator{}, err
	}
	if err := checkGeneRate(geneRate); err != nil {
		return BitFlipMutator{}, err
	}
	return BitFlipMutator{base: base, geneRate: geneRate}, nil
}

func (m BitFlipMutator) Alter(pop Population[bool], generation uint64, rng *rand.Rand) (Population[bool], error) {
	return eachSelectedGene(pop, m.base, m.geneRate, rng, func(g Gene[bool]) (Gene[bool], error) {
		return g.DuplicateWithValue(!g.Value()), nil
	})
}

// GaussianMutator perturbs numeric genes by adding zero-mean Gaussian noise
// with standard deviation stdDev. It tries one perturbed candidate against
// the gene's own Verify and, if that is rejected, falls back to the gene's
// full Mutate contract.
type GaussianMutator[T Float] struct {
	base     baseMutator
	geneRate float64
	stdDev   float64
}

func NewGaussianMutator[T Float](individualRate, chromosomeRate, geneRate, stdDev float64) (GaussianMutator[T], error) {
	base, err := newBaseMutator(individualRate, chromosomeRate)
	if err != nil {
		return GaussianMutator[T]{}, err
	}
	if err := checkGeneRate(geneRate); err != nil {
		return GaussianMutator[T]{}, err
	}
	return GaussianMutator[T]{base: base, geneRate: geneRate, stdDev: stdDev}, nil
}

func (m GaussianMutator[T]) Alter(pop Population[T], generation uint64, rng *rand.Rand) (Population[T], error) {
	dist := distuv.Normal{Mu: 0, Sigma: m.stdDev, Src: rng}
	return eachSelectedGene(pop, m.base, m.geneRate, rng, func(g Gene[T]) (Gene[T], error) {
		candidate := g.DuplicateWithValue(T(float64(g.Value()) + dist.Rand()))
		if candidate.Verify() {
			return candidate, nil
		}
		return g.Mutate(rng)
	})
}

// UniformMutator perturbs numeric genes by adding noise drawn uniformly
// from [-Delta, Delta].
type UniformMutator[T Integer | Float] struct {
	base     baseMutator
	geneRate float64
	delta    float64
}

func NewUniformMutator[T Integer | Float](individualRate, chromosomeRate, geneRate, delta float64) (UniformMutator[T], error) {
	base, err := newBaseMutator(individualRate, chromosomeRate)
	if err != nil {
		return UniformMutator[T]{}, err
	}
	if err := checkGeneRate(geneRate); err != nil {
		return UniformMutator[T]{}, err
	}
	return UniformMutator[T]{base: base, geneRate: geneRate, delta: delta}, nil
}

func (m UniformMutator[T]) Alter(pop Population[T], generation uint64, rng *rand.Rand) (Population[T], error) {
	return eachSelectedGene(pop, m.base, m.geneRate, rng, func(g Gene[T]) (Gene[T], error) {
		noise := (rng.Float64()*2 - 1) * m.delta
		candidate := g.DuplicateWithValue(T(float64(g.Value()) + noise))
		if candidate.Verify() {
			return candidate, nil
		}
		return g.Mutate(rng)
	})
}

// RandomValueMutator replaces selected genes outright via the gene's own
// Mutate contract, ignoring the current value.
type RandomValueMutator[T any] struct {
	base     baseMutator
	geneRate float64
}

func NewRandomValueMutator[T any](individualRate, chromosomeRate, geneRate float64) (RandomValueMutator[T], error) {
	base, err := newBaseMutator(individualRate, chromosomeRate)
	if err != nil {
		return RandomValueMutator[T]{}, err
	}
	if err := checkGeneRate(geneRate); err != nil {
		return RandomValueMutator[T]{}, err
	}
	return RandomValueMutator[T]{base: base, geneRate: geneRate}, nil
}

func (m RandomValueMutator[T]) Alter(pop Population[T], generation uint64, rng *rand.Rand) (Population[T], error) {
	return eachSelectedGene(pop, m.base, m.geneRate, rng, func(g Gene[T]) (Gene[T], error) {
		return g.Mutate(rng)
	})
}

// eachSelectedChromosome applies alter to every chromosome selected by the
// individual/chromosome Bernoulli gates, with no gene-level rate -
// SwapMutator and InversionMutator rewrite a whole chromosome at once.
func eachSelectedChromosome[T any](pop Population[T], base baseMutator, rng *rand.Rand, alter func(Chromosome[T]) Chromosome[T]) Population[T] {
	out := make(Population[T], len(pop))
	for i, ind := range pop {
		if rng.Float64() >= base.individualRate {
			out[i] = ind
			continue
		}
		chromosomes := ind.Genotype.Chromosomes()
		changed := make([]Chromosome[T], len(chromosomes))
		for ci, chromosome := range chromosomes {
			if rng.Float64() >= base.chromosomeRate {
				changed[ci] = chromosome
				continue
			}
			changed[ci] = alter(chromosome)
		}
		out[i] = Individual[T]{Genotype: ind.Genotype.DuplicateWithChromosomes(changed), Fitness: ind.Fitness, Evaluated: ind.Evaluated}
	}
	return out
}

// SwapMutator swaps two randomly chosen gene positions within each
// selected chromosome. It preserves the multiset of gene values and so is
// safe for permutation chromosomes.
type SwapMutator[T any] struct {
	base baseMutator
}

func NewSwapMutator[T any](individualRate, chromosomeRate float64) (SwapMutator[T], error) {
	base, err := newBaseMutator(individualRate, chromosomeRate)
	if err != nil {
		return SwapMutator[T]{}, err
	}
	return SwapMutator[T]{base: base}, nil
}

func (m SwapMutator[T]) Alter(pop Population[T], generation uint64, rng *rand.Rand) (Population[T], error) {
	out := eachSelectedChromosome(pop, m.base, rng, func(c Chromosome[T]) Chromosome[T] {
		if c.Len() < 2 {
			return c
		}
		genes := c.Genes()
		i, j := rng.Intn(len(genes)), rng.Intn(len(genes))
		genes[i], genes[j] = genes[j], genes[i]
		return c.DuplicateWithGenes(genes)
	})
	return out, nil
}

// InversionMutator reverses a randomly chosen contiguous segment of genes
// within each selected chromosome. It preserves the multiset of gene
// values and so is safe for permutation chromosomes.
type InversionMutator[T any] struct {
	base baseMutator
}

func NewInversionMutator[T any](individualRate, chromosomeRate float64) (InversionMutator[T], error) {
	base, err := newBaseMutator(individualRate, chromosomeRate)
	if err != nil {
		return InversionMutator[T]{}, err
	}
	return InversionMutator[T]{base: base}, nil
}

func (m InversionMutator[T]) Alter(pop Population[T], generation uint64, rng *rand.Rand) (Population[T], error) {
	out := eachSelectedChromosome(pop, m.base, rng, func(c Chromosome[T]) Chromosome[T] {
		if c.Len() < 2 {
			return c
		}
		genes := c.Genes()
		i, j := rng.Intn(len(genes)), rng.Intn(len(genes))
		if i > j {
			i, j = j, i
		}
		for i < j {
			genes[i], genes[j] = genes[j], genes[i]
			i++
			j--
		}
		return c.DuplicateWithGenes(genes)
	})
	return out, nil
}
