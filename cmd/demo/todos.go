package main

import (
	"slices"

	"github.com/delaneyj/cellparty/signals"
)

type TodoFilter string

const (
	FilterAll       TodoFilter = "all"
	FilterActive    TodoFilter = "active"
	FilterCompleted TodoFilter = "completed"
)

type todoItem struct {
	ID        int
	Title     string
	Completed bool
}

// todoService keeps its list in signals; every write replaces the slice so
// readers never see it change under them.
type todoService struct {
	nextID int

	todos         *signals.WriteableSignal[[]todoItem]
	filter        *signals.WriteableSignal[TodoFilter]
	filteredTodos *signals.ReadonlySignal[[]todoItem]
	todoCount     *signals.ReadonlySignal[int]
}

func newTodoService(rs *signals.ReactiveSystem) *todoService {
	s := &todoService{
		nextID: 1,
		todos:  signals.Signal(rs, []todoItem{}),
		filter: signals.Signal(rs, FilterAll),
	}
	s.filteredTodos = signals.Computed(func() []todoItem {
		all := s.todos.Value()
		switch s.filter.Value() {
		case FilterActive:
			return filterTodos(all, func(td todoItem) bool { return !td.Completed })
		case FilterCompleted:
			return filterTodos(all, func(td todoItem) bool { return td.Completed })
		default:
			return all
		}
	})
	s.todoCount = signals.Computed(func() int {
		return len(s.todos.Value())
	})
	return s
}

func filterTodos(todos []todoItem, keep func(todoItem) bool) []todoItem {
	out := make([]todoItem, 0, len(todos))
	for _, td := range todos {
		if keep(td) {
			out = append(out, td)
		}
	}
	return out
}

func (s *todoService) addTodo(title string) int {
	id := s.nextID
	s.nextID++
	s.todos.Update(func(current []todoItem) []todoItem {
		return append(slices.Clone(current), todoItem{ID: id, Title: title})
	})
	return id
}

func (s *todoService) toggleTodo(id int) {
	s.todos.Update(func(current []todoItem) []todoItem {
		next := slices.Clone(current)
		for i := range next {
			if next[i].ID == id {
				next[i].Completed = !next[i].Completed
			}
		}
		return next
	})
}

func (s *todoService) deleteTodo(id int) {
	s.todos.Update(func(current []todoItem) []todoItem {
		return filterTodos(current, func(td todoItem) bool { return td.ID != id })
	})
}

func (s *todoService) setFilter(filter TodoFilter) {
	s.filter.SetValue(filter)
}

func titles(todos []todoItem) []string {
	out := make([]string, len(todos))
	for i, td := range todos {
		out[i] = td.Title
	}
	return out
}
