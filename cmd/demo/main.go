package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/delaneyj/cellparty/signals"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	logLevelKey = "log-level"
	formatKey   = "format"
)

func main() {
	cmd := &cli.Command{
		Name:  "demo",
		Usage: "Walk through signals, computed values and effects",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    logLevelKey,
				Usage:   "Minimum level of step logs written to stderr (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("CELLPARTY_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    formatKey,
				Usage:   "Transcript output: table, markdown or csv",
				Value:   "table",
				Sources: cli.EnvVars("CELLPARTY_DEMO_FORMAT"),
			},
		},
		Action: demo,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func demo(ctx context.Context, cmd *cli.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cmd.String(logLevelKey))); err != nil {
		return fmt.Errorf("parse %s: %w", logLevelKey, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	entries, err := walkthrough(logger)
	if err != nil {
		return err
	}
	return renderTranscript(os.Stdout, cmd.String(formatKey), entries)
}

// entry is one line of effect output, tagged with the step that caused it.
type entry struct {
	step   string
	effect string
	output string
}

type transcript struct {
	logger  *slog.Logger
	step    string
	entries []entry
}

func (t *transcript) begin(step string) {
	t.step = step
	t.logger.Info("step", slog.String("name", step))
}

func (t *transcript) record(effect, format string, args ...any) {
	out := fmt.Sprintf(format, args...)
	t.logger.Debug("effect ran", slog.String("effect", effect), slog.String("output", out))
	t.entries = append(t.entries, entry{step: t.step, effect: effect, output: out})
}

type userProfile struct {
	FirstName string
	LastName  string
}

func walkthrough(logger *slog.Logger) ([]entry, error) {
	var effectErr error
	rs := signals.CreateReactiveSystem(func(from signals.SignalAware, err error) {
		logger.Error("effect failed", slog.Any("error", err))
		if effectErr == nil {
			effectErr = err
		}
	})
	t := &transcript{logger: logger}

	t.begin("count := Signal(0)")
	count := signals.Signal(rs, 0)
	doubleCount := signals.Computed(func() int {
		return count.Value() * 2
	})
	t.record("-", "count = %d, doubleCount = %d", count.Value(), doubleCount.Value())

	t.begin("Effect(log count)")
	logEffect := signals.Effect(rs, func() error {
		t.record("log", "count = %d, doubleCount = %d", count.Value(), doubleCount.Value())
		return nil
	})

	t.begin("count.SetValue(5)")
	count.SetValue(5)

	t.begin("count.Update(c + 3)")
	count.Update(func(c int) int { return c + 3 })

	t.begin("count.SetValue(0)")
	count.SetValue(0)

	t.begin("count.AsReadonly()")
	readonlyCount := count.AsReadonly()
	t.record("-", "readonly value = %d", readonlyCount.Value())

	t.begin("user := Signal(profile)")
	user := signals.Signal(rs, userProfile{FirstName: "Max", LastName: "Mustermann"})
	fullName := signals.Computed(func() string {
		u := user.Value()
		return u.FirstName + " " + u.LastName
	})
	profileEffect := signals.Effect(rs, func() error {
		t.record("profile", "full name = %s", fullName.Value())
		return nil
	})

	t.begin("user.Update(first name)")
	user.Update(func(u userProfile) userProfile {
		u.FirstName = "Anna"
		return u
	})

	t.begin("user.Update(last name)")
	user.Update(func(u userProfile) userProfile {
		u.LastName = "Schmidt"
		return u
	})

	t.begin("todos := Signal([]todo)")
	todoList := newTodoService(rs)
	todoEffect := signals.Effect(rs, func() error {
		t.record("todos", "count = %d, %s = [%s]",
			todoList.todoCount.Value(),
			todoList.filter.Value(),
			strings.Join(titles(todoList.filteredTodos.Value()), ", "),
		)
		return nil
	})

	t.begin("addTodo x3")
	first := todoList.addTodo("Learn Go")
	second := todoList.addTodo("Understand signals")
	todoList.addTodo("Wire effects")

	t.begin("toggleTodo(first)")
	todoList.toggleTodo(first)

	t.begin(`setFilter("active")`)
	todoList.setFilter(FilterActive)

	t.begin(`setFilter("completed")`)
	todoList.setFilter(FilterCompleted)

	t.begin("deleteTodo(second)")
	todoList.deleteTodo(second)

	logEffect.Destroy()
	profileEffect.Destroy()
	todoEffect.Destroy()

	t.begin("destroy, count.SetValue(99)")
	count.SetValue(99)
	t.record("-", "count = %d", count.Value())

	return t.entries, effectErr
}

func renderTranscript(w io.Writer, format string, entries []entry) error {
	tbl := table.NewWriter()
	tbl.SetTitle("Signals walkthrough")
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"step", "effect", "output"})
	for _, e := range entries {
		tbl.AppendRow(table.Row{e.step, e.effect, e.output})
	}

	switch format {
	case "table":
		tbl.Render()
	case "markdown":
		tbl.RenderMarkdown()
	case "csv":
		tbl.RenderCSV()
	default:
		return fmt.Errorf("unknown %s %q", formatKey, format)
	}
	return nil
}
