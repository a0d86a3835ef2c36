// Package benchgraph builds layered dependency graphs of derived values for
// benchmarking, after the js-reactivity-benchmark "cellx" style graphs.
package benchgraph

import (
	"math"
	"math/rand"

	"github.com/delaneyj/cellparty/signals"
)

type Graph struct {
	RS      *signals.ReactiveSystem
	Sources []*signals.WriteableSignal[int]
	Layers  [][]signals.Reader[int]
}

type MakeConfig struct {
	Counter        *int64  // incremented on every node evaluation, may be nil
	Width          int     // nodes per layer
	TotalLayers    int     // including the source layer, at least 2
	NSources       int     // inputs per node
	StaticFraction float64 // fraction of nodes that always read every input
	Seed           int64
}

// Make builds the graph and reports which nodes are dynamic. A TotalLayers
// below 2 still builds one layer of computed nodes over the sources.
func Make(cfg *MakeConfig) (graph *Graph, isDynamic [][]bool) {
	counter := cfg.Counter
	if counter == nil {
		counter = new(int64)
	}

	rs := signals.CreateReactiveSystem(nil)
	sources := make([]*signals.WriteableSignal[int], cfg.Width)
	prevRow := make([]signals.Reader[int], cfg.Width)
	for i := range sources {
		sources[i] = signals.Signal(rs, i)
		prevRow[i] = sources[i]
	}
	graph = &Graph{RS: rs, Sources: sources}

	random := rand.New(rand.NewSource(cfg.Seed))
	numRows := max(cfg.TotalLayers-1, 1)
	graph.Layers = make([][]signals.Reader[int], numRows)
	isDynamic = make([][]bool, numRows)
	for l := 0; l < numRows; l++ {
		graph.Layers[l], isDynamic[l] = makeRow(cfg, counter, prevRow, random)
		prevRow = graph.Layers[l]
	}

	return graph, isDynamic
}

func makeRow(cfg *MakeConfig, counter *int64, sources []signals.Reader[int], random *rand.Rand) (row []signals.Reader[int], isDynamic []bool) {
	row = make([]signals.Reader[int], len(sources))
	isDynamic = make([]bool, len(sources))

	for myDex := range sources {
		mySources := make([]signals.Reader[int], 0, cfg.NSources)
		for sourceDex := 0; sourceDex < cfg.NSources; sourceDex++ {
			mySources = append(mySources, sources[(myDex+sourceDex)%len(sources)])
		}

		if random.Float64() < cfg.StaticFraction || len(mySources) < 2 {
			row[myDex] = signals.Computed(func() int {
				*counter++
				sum := 0
				for _, source := range mySources {
					sum += source.Value()
				}
				return sum
			})
			continue
		}

		first := mySources[0]
		tail := mySources[1:]
		row[myDex] = signals.Computed(func() int {
			*counter++
			sum := first.Value()
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)
			for i := 0; i < len(tail); i++ {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += tail[i].Value()
			}
			return sum
		})
		isDynamic[myDex] = true
	}

	return row, isDynamic
}

type RunConfig struct {
	Graph        *Graph
	Iterations   int
	ReadFraction float64
	Seed         int64
}

// Run writes one source per iteration and reads a fraction of the leaves.
// When observe is set every read leaf is wrapped in an effect so writes
// propagate eagerly. It returns the sum of the read leaves after the last
// iteration.
func Run(cfg *RunConfig, observe bool) int {
	if len(cfg.Graph.Layers) == 0 {
		return 0
	}
	random := rand.New(rand.NewSource(cfg.Seed))
	leaves := cfg.Graph.Layers[len(cfg.Graph.Layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - cfg.ReadFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	if observe {
		for _, leaf := range readLeaves {
			e := signals.Effect(cfg.Graph.RS, func() error {
				leaf.Value()
				return nil
			})
			defer e.Destroy()
		}
	}

	sources := cfg.Graph.Sources
	for i := 0; i < cfg.Iterations; i++ {
		sourceDex := i % len(sources)
		sources[sourceDex].SetValue(i + sourceDex)

		if !observe {
			for _, leaf := range readLeaves {
				leaf.Value()
			}
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Value()
	}
	return sum
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	rmCount = min(rmCount, len(copyWithRemovals))
	for i := 0; i < rmCount; i++ {
		rmDex := random.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}
