package keen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestIndividualWithFitnessMarksEvaluated(t *testing.T) {
	ind := NewIndividual(genotypeOf(1, 2, 3))
	assert.False(t, ind.Evaluated)
	evaluated := ind.WithFitness(6)
	assert.True(t, evaluated.Evaluated)
	assert.Equal(t, 6.0, evaluated.Fitness)
}

func TestIndividualWithFitnessPanicsOnNaN(t *testing.T) {
	ind := NewIndividual(genotypeOf(1))
	assert.Panics(t, func() {
		ind.WithFitness(nan())
	})
}

func nan() float64 {
	var zero float64
	return zero / zero
}

// individualComparer lets go-cmp diff populations by the same
// flattened-value-and-fitness notion of equality Individual.Equal defines,
// since Genotype's internal slices aren't otherwise comparable by
// reflection.
var individualComparer = cmp.Comparer(func(a, b Individual[int]) bool {
	return a.Equal(b)
})

func TestPopulationCloneIsStructurallyEqualToOriginal(t *testing.T) {
	pop := Population[int]{
		NewIndividual(genotypeOf(1, 2)).WithFitness(3),
		NewIndividual(genotypeOf(3, 4)).WithFitness(7),
	}
	clone := pop.Clone()

	if diff := cmp.Diff(pop, clone, individualComparer); diff != "" {
		t.Fatalf("clone differs from original (-want +got):\n%s", diff)
	}
}

func TestPopulationCloneIsIndependentSliceHeader(t *testing.T) {
	pop := Population[int]{NewIndividual(genotypeOf(1))}
	clone := pop.Clone()
	clone[0] = NewIndividual(genotypeOf(9, 9, 9))

	if diff := cmp.Diff(pop, clone, individualComparer); diff == "" {
		t.Fatal("expected clone mutation not to affect the original population")
	}
}
