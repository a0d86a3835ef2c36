package main

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkthrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	entries, err := walkthrough(logger)
	require.NoError(t, err)

	outputs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.effect == "log" || e.effect == "profile" {
			outputs = append(outputs, e.output)
		}
	}
	assert.Equal(t, []string{
		"count = 0, doubleCount = 0",
		"count = 5, doubleCount = 10",
		"count = 8, doubleCount = 16",
		"count = 0, doubleCount = 0",
		"full name = Max Mustermann",
		"full name = Anna Mustermann",
		"full name = Anna Schmidt",
	}, outputs)

	last := entries[len(entries)-1]
	assert.Equal(t, "destroy, count.SetValue(99)", last.step)
	assert.Equal(t, "count = 99", last.output)
}

func TestWalkthroughTodos(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	entries, err := walkthrough(logger)
	require.NoError(t, err)

	outputs := []string{}
	for _, e := range entries {
		if e.effect == "todos" {
			outputs = append(outputs, e.step+": "+e.output)
		}
	}
	assert.Equal(t, []string{
		"todos := Signal([]todo): count = 0, all = []",
		"addTodo x3: count = 1, all = [Learn Go]",
		"addTodo x3: count = 2, all = [Learn Go, Understand signals]",
		"addTodo x3: count = 3, all = [Learn Go, Understand signals, Wire effects]",
		"toggleTodo(first): count = 3, all = [Learn Go, Understand signals, Wire effects]",
		`setFilter("active"): count = 3, active = [Understand signals, Wire effects]`,
		`setFilter("completed"): count = 3, completed = [Learn Go]`,
		"deleteTodo(second): count = 2, completed = [Learn Go]",
	}, outputs)
}

func TestWalkthroughLogsSteps(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := walkthrough(logger)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "count.SetValue(5)")
	assert.Contains(t, out, `msg="effect ran"`)
	assert.Contains(t, out, "effect=profile")
}

func TestRenderTranscript(t *testing.T) {
	entries := []entry{{step: "s", effect: "log", output: "count = 1"}}

	for _, format := range []string{"table", "markdown", "csv"} {
		buf := &bytes.Buffer{}
		require.NoError(t, renderTranscript(buf, format, entries), format)
		assert.Contains(t, buf.String(), "count = 1", format)
	}

	assert.Error(t, renderTranscript(io.Discard, "yaml", entries))
}
