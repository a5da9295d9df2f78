package keen

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/google/uuid"
)

// EngineState is the engine's observable state between generations: the
// generation counter and the current population.
type EngineState[T any] struct {
	Generation uint64
	Population Population[T]
}

// EmptyState returns the engine's starting state: generation 0, no
// population.
func EmptyState[T any]() EngineState[T] {
	return EngineState[T]{}
}

// EvolutionResult is the only state a run persists: a snapshot of the
// ranker used, the final population, the generation reached, and a run id
// for correlating it with logs or listener callbacks.
type EvolutionResult[T any] struct {
	ID         uuid.UUID
	Ranker     Ranker[T]
	Population Population[T]
	Generation uint64
}

// ErrEngineConsumed is returned by Evolve when called on an engine that has
// already produced a result; an Engine's state is consumed by its one run.
var ErrEngineConsumed = errors.New("keen: engine has already evolved")

// Engine owns the generation pipeline, its state, and listener dispatch.
// Build one with NewEngine and run it exactly once with Evolve.
type Engine[T any] struct {
	populationSize    int
	survivalRate      float64
	limits            []Limit[T]
	offspringSelector Selector[T]
	survivorSelector  Selector[T]
	alterer           Alterer[T]
	ranker            Ranker[T]
	evaluator         Evaluator[T]
	listeners         []Listener[T]
	interceptor       Interceptor[T]
	factory           GenotypeFactory[T]
	logger            *slog.Logger

	state    EngineState[T]
	consumed bool
}

// EngineOption configures an Engine at build time.
type EngineOption[T any] func(*engineConfig[T])

type engineConfig[T any] struct {
	populationSize    int
	survivalRate      float64
	limits            []Limit[T]
	selector          Selector[T]
	offspringSelector Selector[T]
	survivorSelector  Selector[T]
	alterer           Alterer[T]
	ranker            Ranker[T]
	evaluator         Evaluator[T]
	listeners         []Listener[T]
	interceptor       Interceptor[T]
	logger            *slog.Logger
}

func WithPopulationSize[T any](n int) EngineOption[T] {
	return func(c *engineConfig[T]) { c.populationSize = n }
}

func WithSurvivalRate[T any](rate float64) EngineOption[T] {
	return func(c *engineConfig[T]) { c.survivalRate = rate }
}

func WithLimits[T any](limits ...Limit[T]) EngineOption[T] {
	return func(c *engineConfig[T]) { c.limits = append([]Limit[T]{}, limits...) }
}

// WithSelector sets the default selector used for both offspring and
// survivor selection, unless overridden by WithOffspringSelector or
// WithSurvivorSelector.
func WithSelector[T any](s Selector[T]) EngineOption[T] {
	return func(c *engineConfig[T]) { c.selector = s }
}

func WithOffspringSelector[T any](s Selector[T]) EngineOption[T] {
	return func(c *engineConfig[T]) { c.offspringSelector = s }
}

func WithSurvivorSelector[T any](s Selector[T]) EngineOption[T] {
	return func(c *engineConfig[T]) { c.survivorSelector = s }
}

func WithAlterers[T any](alterers ...Alterer[T]) EngineOption[T] {
	return func(c *engineConfig[T]) { c.alterer = Alterers[T](alterers) }
}

func WithRanker[T any](r Ranker[T]) EngineOption[T] {
	return func(c *engineConfig[T]) { c.ranker = r }
}

func WithEvaluator[T any](e Evaluator[T]) EngineOption[T] {
	return func(c *engineConfig[T]) { c.evaluator = e }
}

func WithListeners[T any](listeners ...Listener[T]) EngineOption[T] {
	return func(c *engineConfig[T]) { c.listeners = listeners }
}

func WithInterceptor[T any](i Interceptor[T]) EngineOption[T] {
	return func(c *engineConfig[T]) { c.interceptor = i }
}

func WithLogger[T any](logger *slog.Logger) EngineOption[T] {
	return func(c *engineConfig[T]) { c.logger = logger }
}

// NewEngine builds an Engine from a required fitness function and genotype
// factory plus any number of options. Configuration invariants are
// validated in one pass; every violation found is joined into the returned
// ConstraintError.
func NewEngine[T any](fitnessFn func(Genotype[T]) float64, factory GenotypeFactory[T], opts ...EngineOption[T]) (*Engine[T], error) {
	cfg := &engineConfig[T]{
		populationSize: 50,
		survivalRate:   0.4,
		selector:       NewTournamentSelector[T](3),
		ranker:         FitnessMaxRanker[T]{},
		interceptor:    IdentityInterceptor[T](),
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.limits == nil {
		cfg.limits = []Limit[T]{NewGenerationCountLimit[T](100)}
	}
	if cfg.offspringSelector == nil {
		cfg.offspringSelector = cfg.selector
	}
	if cfg.survivorSelector == nil {
		cfg.survivorSelector = cfg.selector
	}
	if cfg.alterer == nil {
		cfg.alterer = Alterers[T]{}
	}
	if cfg.evaluator == nil {
		cfg.evaluator = NewSequentialEvaluator(fitnessFn)
	}

	var violations []error
	if fitnessFn == nil {
		violations = append(violations, constraintf("fitness function is required"))
	}
	if cfg.populationSize < 1 {
		violations = append(violations, constraintf("population size (%d) must be >= 1", cfg.populationSize))
	}
	if cfg.survivalRate < 0 || cfg.survivalRate > 1 {
		violations = append(violations, constraintf("survival rate (%v) must be in 0.0..1.0", cfg.survivalRate))
	}
	if len(cfg.limits) == 0 {
		violations = append(violations, constraintf("Limits cannot be empty"))
	}
	if err := newConstraintError(violations...); err != nil {
		return nil, err
	}

	return &Engine[T]{
		populationSize:    cfg.populationSize,
		survivalRate:      cfg.survivalRate,
		limits:            cfg.limits,
		offspringSelector: cfg.offspringSelector,
		survivorSelector:  cfg.survivorSelector,
		alterer:           cfg.alterer,
		ranker:            cfg.ranker,
		evaluator:         cfg.evaluator,
		listeners:         cfg.listeners,
		interceptor:       cfg.interceptor,
		factory:           factory,
		logger:            cfg.logger,
		state:             EmptyState[T](),
	}, nil
}

func (e *Engine[T]) notifyStarted(generation uint64, pop Population[T]) {
	for _, l := range e.listeners {
		l.GenerationStarted(generation, pop)
	}
}

func (e *Engine[T]) notifyFinished(pop Population[T]) {
	for _, l := range e.listeners {
		l.GenerationFinished(pop)
	}
}

func (e *Engine[T]) splitCounts() (numOffspring, numSurvivors int) {
	numSurvivors = int(math.Ceil(e.survivalRate * float64(e.populationSize)))
	numOffspring = e.populationSize - numSurvivors
	return
}

// Evolve runs the generation pipeline to completion: initialize, evaluate,
// select offspring, select survivors, alter, merge, re-evaluate, repeat
// until a Limit fires or ctx is cancelled. It consumes the engine's state;
// calling it twice on the same Engine returns ErrEngineConsumed.
func (e *Engine[T]) Evolve(ctx context.Context) (EvolutionResult[T], error) {
	if e.consumed {
		return EvolutionResult[T]{}, ErrEngineConsumed
	}
	e.consumed = true

	rng := RNG()
	state := e.state
	numOffspring, numSurvivors := e.splitCounts()

	for {
		if err := ctx.Err(); err != nil {
			return EvolutionResult[T]{}, err
		}

		e.notifyStarted(state.Generation, state.Population)
		e.interceptor.Before(state)

		pop := state.Population
		if len(pop) == 0 {
			pop = make(Population[T], e.populationSize)
			for i := range pop {
				g, err := e.factory.Make(rng)
				if err != nil {
					return EvolutionResult[T]{}, err
				}
				pop[i] = NewIndividual(g)
			}
		}

		pop, err := e.evaluator.Evaluate(ctx, pop, false)
		if err != nil {
			return EvolutionResult[T]{}, err
		}

		offspringSeed, err := e.offspringSelector.Select(pop, numOffspring, e.ranker, rng)
		if err != nil {
			return EvolutionResult[T]{}, err
		}
		survivors, err := e.survivorSelector.Select(pop, numSurvivors, e.ranker, rng)
		if err != nil {
			return EvolutionResult[T]{}, err
		}

		altered, err := e.alterer.Alter(offspringSeed, state.Generation, rng)
		if err != nil {
			return EvolutionResult[T]{}, err
		}

		merged := make(Population[T], 0, len(survivors)+len(altered))
		merged = append(merged, survivors...)
		merged = append(merged, altered...)

		if len(merged) != e.populationSize {
			return EvolutionResult[T]{}, constraintf(
				"generation %d produced a population of size %d, expected %d",
				state.Generation, len(merged), e.populationSize,
			)
		}

		merged, err = e.evaluator.Evaluate(ctx, merged, true)
		if err != nil {
			return EvolutionResult[T]{}, err
		}

		newGeneration := state.Generation + 1
		state = EngineState[T]{Generation: newGeneration, Population: merged}
		result := EvolutionResult[T]{
			ID:         uuid.New(),
			Ranker:     e.ranker,
			Population: merged,
			Generation: newGeneration,
		}

		e.interceptor.After(result)
		e.notifyFinished(merged)

		best := bestOf(merged, e.ranker)
		e.logger.Info("generation complete",
			slog.Uint64("generation", newGeneration),
			slog.Float64("best_fitness", best.Fitness),
			slog.Int("population_size", len(merged)),
		)

		for _, limit := range e.limits {
			if limit.Done(e.ranker, state) {
				return result, nil
			}
		}
	}
}
