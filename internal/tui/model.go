// Package tui is the interactive terminal board.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mood-tracker/internal/config"
	apperrors "mood-tracker/internal/errors"
	"mood-tracker/internal/render"
	"mood-tracker/internal/services"
	"mood-tracker/internal/validation"
)

// refreshInterval re-classifies the board as time passes
const refreshInterval = time.Minute

type mode int

const (
	modeList mode = iota
	modeAdd
)

const (
	inputName = iota
	inputDeadline
)

type snapshotMsg struct{ snapshot *services.Snapshot }

type addedMsg struct{ snapshot *services.Snapshot }

type addFailedMsg struct{ err error }

type errMsg struct{ err error }

type tickMsg time.Time

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	quoteStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

// Model is the bubbletea model for the board
type Model struct {
	ctx       context.Context
	board     services.BoardService
	validator *validation.TaskValidator
	layout    string

	snapshot *services.Snapshot
	cursor   int
	mode     mode
	inputs   []textinput.Model
	focus    int
	status   string
	isError  bool
	quitting bool
}

// New creates a board model
func New(ctx context.Context, board services.BoardService, cfg *config.Config) Model {
	name := textinput.New()
	name.Placeholder = "Task name"
	name.Prompt = "Name:     "
	name.CharLimit = cfg.Validation.TaskNameMaxLength
	name.Width = 40

	deadline := textinput.New()
	deadline.Placeholder = "2006-01-02 15:04"
	deadline.Prompt = "Deadline: "
	deadline.CharLimit = 32
	deadline.Width = 40

	return Model{
		ctx:       ctx,
		board:     board,
		validator: validation.NewTaskValidatorWithConfig(cfg),
		layout:    cfg.Time.DisplayFormat,
		inputs:    []textinput.Model{name, deadline},
		status:    "Press 'a' to add, 'd' to delete, 'r' for a new quote, 'q' to quit.",
	}
}

// Run starts the terminal board and blocks until the user quits or ctx ends
func Run(ctx context.Context, board services.BoardService, cfg *config.Config) error {
	restore, err := redirectLogs(debugLogFile)
	if err != nil {
		return err
	}
	defer restore()

	program := tea.NewProgram(New(ctx, board, cfg), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.mode == modeAdd {
			return m.updateAddMode(msg)
		}
		return m.updateListMode(msg)

	case snapshotMsg:
		m.setSnapshot(msg.snapshot)
		return m, nil

	case addedMsg:
		m.setSnapshot(msg.snapshot)
		m.closeForm()
		m.setStatus("Task added", false)
		return m, nil

	case addFailedMsg:
		m.setStatus(userMessage(msg.err), true)
		return m, m.refocusFailedField(msg.err)

	case errMsg:
		m.setStatus(userMessage(msg.err), true)
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())

	case tea.WindowSizeMsg:
		for i := range m.inputs {
			m.inputs[i].Width = max(msg.Width-20, 10)
		}
	}
	return m, nil
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.taskCount()-1 {
			m.cursor++
		}
	case "a":
		m.mode = modeAdd
		m.status = "enter: next/submit, tab: switch field, esc: cancel"
		m.isError = false
		return m, m.focusInput(inputName)
	case "d", "x":
		if m.taskCount() == 0 {
			return m, nil
		}
		return m, m.delete(m.cursor)
	case "r":
		return m, m.refreshQuote()
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.setStatus("Cancelled", false)
		return m, nil
	case "tab", "shift+tab":
		return m, m.focusInput(1 - m.focus)
	case "enter":
		if m.focus == inputName {
			if err := m.validator.ValidateTaskName(m.inputs[inputName].Value()); err != nil {
				m.setStatus(userMessage(err), true)
				return m, nil
			}
			return m, m.focusInput(inputDeadline)
		}
		return m, m.add(m.inputs[inputName].Value(), m.inputs[inputDeadline].Value())
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusInput(index int) tea.Cmd {
	m.focus = index
	for i := range m.inputs {
		if i != index {
			m.inputs[i].Blur()
		}
	}
	return m.inputs[index].Focus()
}

// refocusFailedField moves the cursor to the first input a rejected add complained about
func (m *Model) refocusFailedField(err error) tea.Cmd {
	var ve *validation.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	if len(ve.GetFieldErrors(validation.FieldName)) > 0 {
		return m.focusInput(inputName)
	}
	return m.focusInput(inputDeadline)
}

func (m *Model) closeForm() {
	m.mode = modeList
	m.focus = inputName
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
}

func (m *Model) setSnapshot(snapshot *services.Snapshot) {
	m.snapshot = snapshot
	if m.cursor >= m.taskCount() {
		m.cursor = max(m.taskCount()-1, 0)
	}
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.isError = isError
}

func (m Model) taskCount() int {
	if m.snapshot == nil {
		return 0
	}
	return len(m.snapshot.Tasks)
}

// load fetches the start-up quote and the first snapshot
func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		m.board.RefreshQuote(m.ctx)
		return m.snapshotMsg()
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return m.snapshotMsg()
	}
}

func (m Model) refreshQuote() tea.Cmd {
	return m.load()
}

func (m Model) add(name, deadline string) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := m.board.AddTask(m.ctx, name, deadline)
		if err != nil {
			return addFailedMsg{err}
		}
		return addedMsg{snapshot}
	}
}

func (m Model) delete(index int) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := m.board.DeleteTask(m.ctx, index)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg{snapshot}
	}
}

func (m Model) snapshotMsg() tea.Msg {
	snapshot, err := m.board.Snapshot(m.ctx)
	if err != nil {
		return errMsg{err}
	}
	return snapshotMsg{snapshot}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func userMessage(err error) string {
	if ve, ok := err.(*validation.ValidationError); ok {
		return ve.GetUserFriendlyMessage()
	}
	return apperrors.GetUserMessage(err)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Mood Tracker"))
	b.WriteString("\n\n")

	if m.snapshot == nil {
		b.WriteString(mutedStyle.Render("Loading..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(render.MoodLine(m.snapshot.Mood))
	b.WriteString("\n")
	if m.snapshot.Playlist != nil {
		title := string(m.snapshot.PlaylistKey)
		if m.snapshot.Playlist.Title != "" {
			title = m.snapshot.Playlist.Title
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf("♪ %s  %s", title, m.snapshot.Playlist.URL)))
		b.WriteString("\n")
	}
	if m.snapshot.Quote != "" {
		b.WriteString(quoteStyle.Render(m.snapshot.Quote))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.snapshot.Tasks) == 0 {
		b.WriteString(mutedStyle.Render("No tasks yet."))
		b.WriteString("\n")
	}
	for i, task := range m.snapshot.Tasks {
		prefix := "  "
		if i == m.cursor && m.mode == modeList {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix)
		b.WriteString(render.TaskLine(i, task, m.snapshot.Now, m.layout))
		b.WriteString("\n")
	}

	if m.mode == modeAdd {
		b.WriteString("\n")
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.isError {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(mutedStyle.Render(m.status))
	}
	b.WriteString("\n")

	return b.String()
}
