package keen

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Evaluator computes fitness for every not-yet-evaluated individual in a
// population (or for all of them, when force is true), returning an
// evaluated population of the same size in the same order. It never
// mutates the fitness function, and a panic or error from it propagates
// unchanged, aborting the generation.
type Evaluator[T any] interface {
	Evaluate(ctx context.Context, pop Population[T], force bool) (Population[T], error)
}

// SequentialEvaluator computes fitness single-threaded, in population
// order.
type SequentialEvaluator[T any] struct {
	FitnessFn func(Genotype[T]) float64
}

func NewSequentialEvaluator[T any](fitnessFn func(Genotype[T]) float64) SequentialEvaluator[T] {
	return SequentialEvaluator[T]{FitnessFn: fitnessFn}
}

func (e SequentialEvaluator[T]) Evaluate(ctx context.Context, pop Population[T], force bool) (Population[T], error) {
	out := make(Population[T], len(pop))
	for i, ind := range pop {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !force && ind.Evaluated {
			out[i] = ind
			continue
		}
		out[i] = ind.WithFitness(e.FitnessFn(ind.Genotype))
	}
	return out, nil
}

// ParallelEvaluator partitions the individuals needing evaluation into
// chunks of ChunkSize and evaluates the chunks concurrently across up to
// Workers goroutines via golang.org/x/sync/errgroup. Results are written
// back by original index, so the returned population preserves input order
// regardless of which goroutine finished first or in what order its
// chunk's individuals completed.
type ParallelEvaluator[T any] struct {
	FitnessFn func(Genotype[T]) float64
	ChunkSize int
	Workers   int
}

// NewParallelEvaluator builds a parallel evaluator. chunkSize must be
// positive. workers <= 0 means unlimited concurrency (errgroup.SetLimit is
// not applied).
func NewParallelEvaluator[T any](fitnessFn func(Genotype[T]) float64, chunkSize, workers int) (ParallelEvaluator[T], error) {
	if chunkSize <= 0 {
		return ParallelEvaluator[T]{}, constraintf("chunk size %d must be positive", chunkSize)
	}
	return ParallelEvaluator[T]{FitnessFn: fitnessFn, ChunkSize: chunkSize, Workers: workers}, nil
}

func (e ParallelEvaluator[T]) Evaluate(ctx context.Context, pop Population[T], force bool) (Population[T], error) {
	out := make(Population[T], len(pop))
	pending := make([]int, 0, len(pop))
	for i, ind := range pop {
		if !force && ind.Evaluated {
			out[i] = ind
			continue
		}
		pending = append(pending, i)
	}
	if len(pending) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}

	panics := make(chan any, 1)
	for start := 0; start < len(pending); start += e.ChunkSize {
		end := start + e.ChunkSize
		if end > len(pending) {
			end = len(pending)
		}
		chunk := pending[start:end]
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					select {
					case panics <- r:
					default:
					}
				}
			}()
			for _, idx := range chunk {
				if err := gctx.Err(); err != nil {
					return err
				}
				out[idx] = pop[idx].WithFitness(e.FitnessFn(pop[idx].Genotype))
			}
			return nil
		})
	}

	err := g.Wait()
	select {
	case r := <-panics:
		panic(r)
	default:
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
