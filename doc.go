// Package keen is a generic evolutionary-computation engine: genotypes and
// chromosomes built from typed genes, pluggable selection, crossover and
// mutation operators, and an Engine that drives the generation pipeline to
// a configurable Limit.
package keen
