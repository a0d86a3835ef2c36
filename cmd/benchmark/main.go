package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/cellparty/signals"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	profileKey = "profile"
	warmupKey  = "warmup"
)

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 10, 100}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure write propagation through chains of computed signals",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    itersKey,
				Usage:   "Writes to measure per graph shape",
				Value:   100,
				Sources: cli.EnvVars("CELLPARTY_BENCH_ITERS"),
			},
			&cli.StringFlag{
				Name:    profileKey,
				Usage:   "Write a CPU profile to this file",
				Value:   "default.pgo",
				Sources: cli.EnvVars("CELLPARTY_BENCH_PROFILE"),
			},
			&cli.BoolFlag{
				Name:  warmupKey,
				Usage: "Run every shape once before measuring",
				Value: true,
			},
		},
		Action: benchmark,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func benchmark(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Int(itersKey))
	if iters < 1 {
		return fmt.Errorf("%s must be positive, got %d", itersKey, iters)
	}

	if cmd.Bool(warmupKey) {
		log.Printf("warming up")
		benchmarkPropagate(iters, false)
	}
	benchmarkPropagate(iters, true)
	return nil
}

func benchmarkPropagate(iters int, shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Propagate")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "effect runs"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := signals.CreateReactiveSystem(func(from signals.SignalAware, err error) {
				log.Panic(err)
			})
			src := signals.Signal(rs, 1)
			effects := make([]*signals.EffectRunner, 0, w)
			for i := 0; i < w; i++ {
				var last signals.Reader[int] = src
				for j := 0; j < h; j++ {
					prev := last
					last = signals.Computed(func() int {
						return prev.Value() + 1
					})
				}

				effects = append(effects, signals.Effect(rs, func() error {
					last.Value()
					return nil
				}))
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Peek() + 1)
				tach.AddTime(time.Since(start))
			}

			runs := 0
			for _, e := range effects {
				runs += e.Runs()
				e.Destroy()
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
					runs,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
