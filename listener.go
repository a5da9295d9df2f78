package keen

// Listener observes the engine's pipeline event boundaries: it is notified
// synchronously, once per generation, and the engine waits for each
// callback to return before advancing.
type Listener[T any] interface {
	GenerationStarted(generation uint64, pop Population[T])
	GenerationFinished(pop Population[T])
}

// ListenerFuncs adapts two plain functions into a Listener, for callers
// who only care about one of the two boundaries.
type ListenerFuncs[T any] struct {
	OnStarted  func(generation uint64, pop Population[T])
	OnFinished func(pop Population[T])
}

func (l ListenerFuncs[T]) GenerationStarted(generation uint64, pop Population[T]) {
	if l.OnStarted != nil {
		l.OnStarted(generation, pop)
	}
}

func (l ListenerFuncs[T]) GenerationFinished(pop Population[T]) {
	if l.OnFinished != nil {
		l.OnFinished(pop)
	}
}

// Interceptor brackets a generation with pre- and post-hooks. The default,
// IdentityInterceptor, does nothing in either position.
type Interceptor[T any] struct {
	Before func(state EngineState[T])
	After  func(result EvolutionResult[T])
}

func IdentityInterceptor[T any]() Interceptor[T] {
	return Interceptor[T]{
		Before: func(EngineState[T]) {},
		After:  func(EvolutionResult[T]) {},
	}
}
