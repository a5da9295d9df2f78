package keen

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioMaxOnes drives the engine on the classic all-ones objective:
// a boolean genotype scored by its count of true genes, evolved until every
// gene in the best individual is set.
func TestScenarioMaxOnes(t *testing.T) {
	SetRNG(rand.New(rand.NewSource(123)))
	mutator, err := NewBitFlipMutator(1, 1, 0.05)
	require.NoError(t, err)
	crossover, err := NewSinglePointCrossover[bool](0.8)
	require.NoError(t, err)

	const size = 16
	engine, err := NewEngine[bool](onesFitness, onesFactory(size),
		WithPopulationSize[bool](60),
		WithAlterers[bool](crossover, mutator),
		WithLimits[bool](NewTargetFitnessLimit[bool](size), NewGenerationCountLimit[bool](500)),
	)
	require.NoError(t, err)

	result, err := engine.Evolve(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Population, 60)
	best := bestOf(result.Population, result.Ranker)
	assert.Equal(t, float64(size), best.Fitness)
}

// TestScenarioIntegerInRange evolves an integer genotype toward a target
// sum, exercising the int chromosome factory and a min-fitness ranker over
// absolute error.
func TestScenarioIntegerInRange(t *testing.T) {
	SetRNG(rand.New(rand.NewSource(7)))
	const target = 500
	fitness := func(g Genotype[int]) float64 {
		total := 0
		for _, v := range g.Flatten() {
			total += v
		}
		diff := total - target
		if diff < 0 {
			diff = -diff
		}
		return float64(diff)
	}
	factory := NewGenotypeFactory[int](NewIntChromosomeFactory(10, []Range[int]{NewRange(0, 100)}, nil))
	mutator, err := NewUniformMutator[int](1, 1, 0.2, 5)
	require.NoError(t, err)

	engine, err := NewEngine[int](fitness, factory,
		WithPopulationSize[int](60),
		WithRanker[int](FitnessMinRanker[int]{}),
		WithAlterers[int](mutator),
		WithLimits[int](NewTargetFitnessLimit[int](0), NewGenerationCountLimit[int](500)),
	)
	require.NoError(t, err)

	result, err := engine.Evolve(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Population, 60)
	best := bestOf(result.Population, result.Ranker)
	assert.LessOrEqual(t, best.Fitness, 50.0)
}

// TestScenarioPermutationTour evolves a fixed-city permutation chromosome
// under a min-fitness ranker scoring the round trip as the sum of its
// squared leg lengths.
func TestScenarioPermutationTour(t *testing.T) {
	SetRNG(rand.New(rand.NewSource(99)))
	cities := [][2]float64{
		{0, 0}, {1, 5}, {5, 5}, {6, 1}, {3, 3}, {8, 2}, {2, 8}, {7, 7},
	}
	dist := func(a, b [2]float64) float64 {
		dx, dy := a[0]-b[0], a[1]-b[1]
		return dx*dx + dy*dy
	}
	fitness := func(g Genotype[int]) float64 {
		order := g.Flatten()
		total := 0.0
		for i := range order {
			next := (i + 1) % len(order)
			total += dist(cities[order[i]], cities[order[next]])
		}
		return total
	}
	values := []int{0, 1, 2, 3, 4, 5, 6, 7}
	factory := NewGenotypeFactory[int](NewPermutationChromosomeFactory(values))
	crossover, err := NewPermutationCrossover[int](0.9)
	require.NoError(t, err)
	swap, err := NewSwapMutator[int](0.3, 1)
	require.NoError(t, err)

	engine, err := NewEngine[int](fitness, factory,
		WithPopulationSize[int](80),
		WithRanker[int](FitnessMinRanker[int]{}),
		WithAlterers[int](crossover, swap),
		WithLimits[int](NewGenerationCountLimit[int](200)),
	)
	require.NoError(t, err)

	result, err := engine.Evolve(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Population, 80)
	best := bestOf(result.Population, result.Ranker)
	perm := NewPermutationChromosome(best.Genotype.Chromosomes()[0])
	assert.True(t, perm.IsPermutation())
}

// TestScenarioBuildFailsOnEmptyLimits exercises the configuration error
// path: an engine with no termination limit can never be guaranteed to
// halt, so the builder rejects it up front.
func TestScenarioBuildFailsOnEmptyLimits(t *testing.T) {
	_, err := NewEngine[bool](onesFitness, onesFactory(4), WithLimits[bool]())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Limits cannot be empty")
}

// TestScenarioMutatorRateOutOfRangeFails verifies a mutator
// rate outside [0,1] is rejected before it ever reaches the engine.
func TestScenarioMutatorRateOutOfRangeFails(t *testing.T) {
	_, err := NewBitFlipMutator(1, 1, 1.2)
	var mErr *MutatorConfigError
	assert.ErrorAs(t, err, &mErr)
}

// TestScenarioForceVsLazyReEvaluation shows that Evaluate(force=false) skips
// already-evaluated individuals while Evaluate(force=true) recomputes every
// one of them, as the merged survivor+offspring pool requires after
// alteration.
func TestScenarioForceVsLazyReEvaluation(t *testing.T) {
	e := NewSequentialEvaluator(sumFitness)
	pop := unevaluatedIntPop([]int{1, 1})
	evaluatedOnce, err := e.Evaluate(context.Background(), pop, false)
	require.NoError(t, err)
	assert.Equal(t, 2.0, evaluatedOnce[0].Fitness)

	stale := evaluatedOnce[0].WithFitness(-1)
	lazy, err := e.Evaluate(context.Background(), Population[int]{stale}, false)
	require.NoError(t, err)
	assert.Equal(t, -1.0, lazy[0].Fitness)

	forced, err := e.Evaluate(context.Background(), Population[int]{stale}, true)
	require.NoError(t, err)
	assert.Equal(t, 2.0, forced[0].Fitness)
}
