// Package tui is the terminal tree view. It renders the reconciler state and
// turns key presses into navigator calls.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/shaie/browze/pkg/navigator"
)

// navigatedMsg is sent when a navigator call returns
type navigatedMsg struct {
	err error
}

// Model is the bubbletea model of the tree view
type Model struct {
	Logger    log.Logger
	Navigator *navigator.Navigator

	ctx     context.Context
	start   string
	keys    keyMap
	help    help.Model
	rows    []navigator.Row
	state   navigator.State
	cursor  int
	focus   string
	loading bool
	width   int
	height  int
}

// NewModel builds a Model that opens at start
func NewModel(ctx context.Context, logger log.Logger, nav *navigator.Navigator, start string) Model {
	return Model{
		Logger:    logger,
		Navigator: nav,
		ctx:       ctx,
		start:     start,
		keys:      defaultKeyMap(),
		help:      help.New(),
		loading:   true,
	}
}

// Init fetches the start location
func (m Model) Init() tea.Cmd {
	start := m.start
	return m.call(func(ctx context.Context) error {
		return m.Navigator.Start(ctx, start)
	})
}

func (m Model) call(fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return navigatedMsg{err: fn(ctx)}
	}
}

// Update handles key presses and navigator results
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case navigatedMsg:
		if msg.err != nil {
			level.Debug(log.With(m.Logger, "method", "Update")).Log("event", "navigate.fail", "err", msg.err)
		}
		m.loading = false
		m.sync()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// sync copies the reconciler state and keeps the cursor on the focused row
func (m *Model) sync() {
	m.state = m.Navigator.Reconciler.Snapshot()
	m.rows = m.Navigator.Reconciler.Rows()

	for _, target := range []string{m.focus, m.state.SelectedNode, m.Navigator.History.Path()} {
		if target == "" {
			continue
		}
		for i, row := range m.rows {
			if row.Node.FullPath() == target {
				m.cursor = i
				m.focus = target
				return
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if len(m.rows) > 0 {
		m.focus = m.rows[m.cursor].Node.FullPath()
	}
}

func (m Model) current() (navigator.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return navigator.Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nav := m.Navigator

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m.navigate(func(ctx context.Context) error {
			_, err := nav.Back(ctx)
			return err
		})
	case key.Matches(msg, m.keys.Forward):
		return m.navigate(func(ctx context.Context) error {
			_, err := nav.Forward(ctx)
			return err
		})
	case key.Matches(msg, m.keys.Refresh):
		return m.navigate(nav.Refresh)
	case key.Matches(msg, m.keys.Parent):
		depth := len(m.state.SelectedPath) - 2
		return m.navigate(func(ctx context.Context) error {
			return nav.Go(ctx, nav.SelectedPrefix(depth))
		})
	}

	row, ok := m.current()
	if !ok {
		return m, nil
	}
	node := row.Node

	switch {
	case key.Matches(msg, m.keys.Select):
		if !node.Leaf {
			return m.navigate(func(ctx context.Context) error {
				return nav.Toggle(ctx, node, !row.Expanded)
			})
		}
		return m.navigate(func(ctx context.Context) error {
			return nav.Select(ctx, node, !row.Selected)
		})
	case key.Matches(msg, m.keys.Expand):
		if node.Leaf || row.Expanded {
			return m, nil
		}
		return m.navigate(func(ctx context.Context) error {
			return nav.Toggle(ctx, node, true)
		})
	case key.Matches(msg, m.keys.Collapse):
		if row.Expanded {
			return m.navigate(func(ctx context.Context) error {
				return nav.Toggle(ctx, node, false)
			})
		}
		m.focusParent(row)
		return m, nil
	}
	return m, nil
}

func (m Model) navigate(fn func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	m.loading = true
	return m, m.call(fn)
}

func (m *Model) focusParent(row navigator.Row) {
	for i := m.cursor - 1; i >= 0; i-- {
		if m.rows[i].Depth < row.Depth {
			m.cursor = i
			m.focus = m.rows[i].Node.FullPath()
			return
		}
	}
}
