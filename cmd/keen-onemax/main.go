// Command keen-onemax drives the engine on the classic max-ones objective:
// a fixed-length bit string scored by its count of set bits.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/r8vnhill/keen"
)

const (
	chromosomeLength = 100
	populationSize   = 200
	survivalRate     = 0.3
	tournamentSize   = 3
	crossoverRate    = 0.9
	individualRate   = 1.0
	chromosomeRate   = 1.0
	geneRate         = 0.02
	maxGenerations   = 300
)

func onesFitness(g keen.Genotype[bool]) float64 {
	count := 0.0
	for _, v := range g.Flatten() {
		if v {
			count++
		}
	}
	return count
}

func main() {
	keen.SetRNG(rand.New(rand.NewSource(1)))

	factory := keen.NewGenotypeFactory[bool](
		keen.NewBoolChromosomeFactory(chromosomeLength, nil),
	)

	crossover, err := keen.NewSinglePointCrossover[bool](crossoverRate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build crossover:", err)
		os.Exit(1)
	}
	mutator, err := keen.NewBitFlipMutator(individualRate, chromosomeRate, geneRate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build mutator:", err)
		os.Exit(1)
	}

	engine, err := keen.NewEngine[bool](onesFitness, factory,
		keen.WithPopulationSize[bool](populationSize),
		keen.WithSurvivalRate[bool](survivalRate),
		keen.WithSelector[bool](keen.NewTournamentSelector[bool](tournamentSize)),
		keen.WithAlterers[bool](crossover, mutator),
		keen.WithLimits[bool](
			keen.NewTargetFitnessLimit[bool](chromosomeLength),
			keen.NewGenerationCountLimit[bool](maxGenerations),
		),
		keen.WithLogger[bool](slog.New(slog.NewTextHandler(os.Stdout, nil))),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build engine:", err)
		os.Exit(1)
	}

	result, err := engine.Evolve(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "evolve:", err)
		os.Exit(1)
	}

	best := result.Population[0]
	for _, ind := range result.Population[1:] {
		if result.Ranker.Compare(ind, best) < 0 {
			best = ind
		}
	}

	fmt.Printf("generation %d, best fitness %.0f/%d\n", result.Generation, best.Fitness, chromosomeLength)
}
