package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/cellparty/internal/benchgraph"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	repeatsKey = "repeats"
	observeKey = "observe"
)

type benchmarkTestConfig struct {
	name           string  // friendly name for the test, should be unique
	width          int     // width of dependency graph to construct
	totalLayers    int     // depth of dependency graph to construct
	staticFraction float64 // fraction of nodes that are static
	nSources       int     // construct a graph with number of sources in each node
	readFraction   float64 // fraction of [0, 1] elements in the last layer from which to read values in each test iteration
	iterations     int     // number of test iterations
}

// Computed values are not cached, so a leaf read costs nSources^layers
// evaluations. The shapes stay shallow accordingly.
var perfTestCfgs = []benchmarkTestConfig{
	{
		name:           "simple component",
		width:          10,
		staticFraction: 1,
		nSources:       2,
		totalLayers:    5,
		readFraction:   0.2,
		iterations:     60_000,
	},
	{
		name:           "dynamic component",
		width:          10,
		totalLayers:    5,
		staticFraction: 0.75,
		nSources:       3,
		readFraction:   0.2,
		iterations:     15_000,
	},
	{
		name:           "large web app",
		width:          1000,
		totalLayers:    4,
		staticFraction: 0.95,
		nSources:       2,
		readFraction:   1,
		iterations:     700,
	},
	{
		name:           "wide dense",
		width:          1000,
		totalLayers:    3,
		staticFraction: 1,
		nSources:       25,
		readFraction:   1,
		iterations:     30,
	},
	{
		name:           "deep",
		width:          5,
		totalLayers:    100,
		staticFraction: 1,
		nSources:       1,
		readFraction:   1,
		iterations:     500,
	},
	{
		name:           "very dynamic",
		width:          100,
		totalLayers:    4,
		staticFraction: 0.5,
		nSources:       4,
		readFraction:   1,
		iterations:     200,
	},
}

func main() {
	cmd := &cli.Command{
		Name:  "benchmark_graph",
		Usage: "Run layered dependency graph benchmarks",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    repeatsKey,
				Usage:   "Measured runs per config, the best one is reported",
				Value:   5,
				Sources: cli.EnvVars("CELLPARTY_GRAPH_REPEATS"),
			},
			&cli.BoolFlag{
				Name:    observeKey,
				Usage:   "Wrap read leaves in effects instead of pulling them",
				Sources: cli.EnvVars("CELLPARTY_GRAPH_OBSERVE"),
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type results struct {
	sum      int
	count    int64
	duration time.Duration
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting graph benchmark, please wait...")
	defer log.Print("Finished graph benchmark")

	testRepeats := int(cmd.Int(repeatsKey))
	if testRepeats < 1 {
		return fmt.Errorf("%s must be positive, got %d", repeatsKey, testRepeats)
	}
	observe := cmd.Bool(observeKey)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"mode", "size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "evals", "updateRate", "title",
	})

	for _, cfg := range perfTestCfgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Printf("Running '%s' config", cfg.name)

		counter := new(int64)
		graph, _ := benchgraph.Make(&benchgraph.MakeConfig{
			Counter:        counter,
			Width:          cfg.width,
			TotalLayers:    cfg.totalLayers,
			NSources:       cfg.nSources,
			StaticFraction: cfg.staticFraction,
		})
		runOnce := func() int {
			return benchgraph.Run(&benchgraph.RunConfig{
				Graph:        graph,
				Iterations:   cfg.iterations,
				ReadFraction: cfg.readFraction,
			}, observe)
		}
		// run once to warm up
		runOnce()

		bestResult := &results{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.name, i+1, testRepeats, (i+1)*100/testRepeats)
			*counter = 0
			start := time.Now()
			sum := runOnce()
			duration := time.Since(start)

			if duration < bestResult.duration {
				bestResult.duration = duration
				bestResult.sum = sum
				bestResult.count = *counter
			}
		}

		updateRate := float64(bestResult.count) / (float64(bestResult.duration) / float64(time.Millisecond))
		mode := "pull"
		if observe {
			mode = "effect"
		}

		table.Append([]string{
			mode,
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(int64(cfg.iterations)),
			cfg.name,
			fmt.Sprint(bestResult.duration),
			humanize.Comma(bestResult.count),
			humanize.Comma(int64(updateRate)),
			makeTitle(cfg),
		})
	}
	table.Render()
	return nil
}

func makeTitle(cfg benchmarkTestConfig) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}
