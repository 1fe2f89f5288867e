// Package tui provides a terminal interface for the todo list.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jrazmi/todos/sdk/todoclient"
)

// Service is the subset of the todo API the interface drives.
type Service interface {
	List(ctx context.Context) ([]todoclient.Todo, error)
	Create(ctx context.Context, text string) (todoclient.Todo, error)
	SetCompleted(ctx context.Context, id int, completed bool) (todoclient.Todo, error)
	Delete(ctx context.Context, id int) error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	inputStyle  = lipgloss.NewStyle().Bold(true)
)

// Run starts the interface and blocks until the user quits.
func Run(ctx context.Context, svc Service) error {
	program := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Model is the bubbletea model for the todo list.
type Model struct {
	ctx context.Context
	svc Service

	todos         []todoclient.Todo
	loaded        bool
	cursor        int
	completedOnly bool

	adding bool
	input  string

	err error
}

type loadedMsg struct {
	todos []todoclient.Todo
	err   error
}

// New returns a model backed by svc.
func New(ctx context.Context, svc Service) *Model {
	return &Model{ctx: ctx, svc: svc}
}

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.todos = msg.todos
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ":
		if m.completedOnly {
			break
		}
		if todo, ok := m.selected(); ok {
			return m, m.mutate(func(ctx context.Context) error {
				_, err := m.svc.SetCompleted(ctx, todo.ID, !todo.Completed)
				return err
			})
		}
	case "d":
		if m.completedOnly {
			break
		}
		if todo, ok := m.selected(); ok {
			return m, m.mutate(func(ctx context.Context) error {
				return m.svc.Delete(ctx, todo.ID)
			})
		}
	case "a":
		m.adding = true
		m.input = ""
	case "c":
		m.completedOnly = !m.completedOnly
		m.cursor = 0
	case "r":
		return m, m.load()
	}

	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.adding = false
		m.input = ""
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input)
		if text == "" {
			return m, nil
		}
		m.adding = false
		m.input = ""
		return m, m.mutate(func(ctx context.Context) error {
			_, err := m.svc.Create(ctx, text)
			return err
		})
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}

	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	title := "TODO List"
	if m.completedOnly {
		title = "Completed TODOs"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}

	switch {
	case !m.loaded:
		b.WriteString("Loading...\n")
	case len(m.visible()) == 0:
		b.WriteString("Nothing here.\n")
	default:
		for i, todo := range m.visible() {
			cursor := "  "
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
			}

			line := todo.Text
			if todo.Completed {
				line = doneStyle.Render(line)
			}

			if m.completedOnly {
				fmt.Fprintf(&b, "%s%s\n", cursor, line)
				continue
			}

			check := "[ ]"
			if todo.Completed {
				check = "[x]"
			}
			fmt.Fprintf(&b, "%s%s %s\n", cursor, check, line)
		}
	}

	b.WriteString("\n")
	if m.adding {
		b.WriteString(inputStyle.Render("New TODO: ") + m.input + "_\n")
		b.WriteString(footerStyle.Render("enter add • esc cancel") + "\n")
		return b.String()
	}

	help := "j/k move • space toggle • d delete • a add • c completed • r refresh • q quit"
	if m.completedOnly {
		help = "j/k move • a add • c all todos • r refresh • q quit"
	}
	b.WriteString(footerStyle.Render(help) + "\n")
	return b.String()
}

// visible returns the todos shown in the current view.
func (m *Model) visible() []todoclient.Todo {
	if !m.completedOnly {
		return m.todos
	}

	out := make([]todoclient.Todo, 0, len(m.todos))
	for _, t := range m.todos {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

func (m *Model) selected() (todoclient.Todo, bool) {
	v := m.visible()
	if m.cursor < 0 || m.cursor >= len(v) {
		return todoclient.Todo{}, false
	}
	return v[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *Model) load() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		todos, err := svc.List(ctx)
		return loadedMsg{todos: todos, err: err}
	}
}

// mutate runs op and reloads the list so the view reflects the server.
func (m *Model) mutate(op func(ctx context.Context) error) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		if err := op(ctx); err != nil {
			return loadedMsg{err: err}
		}
		todos, err := svc.List(ctx)
		return loadedMsg{todos: todos, err: err}
	}
}
