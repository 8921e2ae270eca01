// Package ui is the terminal adapter: it feeds key presses to a loom and
// draws the loom's read contract with bubbletea and lipgloss.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/omnivirtus/vitalis/internal/core/loom"
	"github.com/omnivirtus/vitalis/internal/core/models"
	"github.com/omnivirtus/vitalis/internal/core/observability/log"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	titleRows  = 2
	statusRows = 3
	modeRows   = 3
)

type tickMsg time.Time

// Model is the bubbletea model for one session.
type Model struct {
	loom   *loom.Loom
	styles Styles
	logger log.Log
	tick   time.Duration

	width, height int
}

var _ tea.Model = (*Model)(nil)

func NewModel(l *loom.Loom, tick time.Duration, logger log.Log) *Model {
	if logger == nil {
		logger = log.Nop()
	}
	return &Model{
		loom:   l,
		styles: DefaultStyles(),
		logger: logger,
		tick:   tick,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m *Model) nextTick() tea.Cmd {
	if m.tick <= 0 {
		return nil
	}
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		for _, key := range keysFromMsg(msg) {
			m.loom.Dispatch(key)
			if m.loom.QuitRequested() {
				return m, tea.Quit
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		if n := m.loom.Drain(); n > 0 {
			m.logger.Debug("drained posted work", log.Int("count", n))
		}
		if m.loom.QuitRequested() {
			return m, tea.Quit
		}
		return m, m.nextTick()
	}
	return m, nil
}

func (m *Model) View() string {
	_, ex := m.loom.CommandLine()
	innerWidth := max(m.width-2, 1)

	viewRows := m.height - titleRows - statusRows - modeRows - 2
	if ex {
		viewRows--
	}
	viewRows = max(viewRows, 1)

	sections := []string{
		m.styles.Title.Render("Vitalis"),
		m.styles.Box.Width(innerWidth).Render(" " + m.loom.StatusLine()),
		m.styles.Title.Render("The Tapestry"),
		m.styles.Box.Width(innerWidth).Render(m.renderGame(innerWidth, viewRows)),
		m.styles.Box.Width(innerWidth).Render(m.renderModeBar(innerWidth)),
	}
	if line, ok := m.loom.CommandLine(); ok {
		sections = append(sections, m.styles.CommandLine.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderGame(width, height int) string {
	center, _ := m.loom.PlayerPosition()
	rows := Grid(m.loom, center, width, height)

	var b strings.Builder
	for y, row := range rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range row {
			b.WriteString(m.cellStyle(cell).Render(string(cell.Symbol())))
		}
	}
	return b.String()
}

func (m *Model) cellStyle(c loom.Cell) lipgloss.Style {
	switch c {
	case loom.CellPlayer:
		return m.styles.Player
	case loom.CellRegion:
		return m.styles.Region
	case loom.CellNPC:
		return m.styles.NPC
	default:
		return lipgloss.NewStyle()
	}
}

// renderModeBar puts the mode name on the left and pending keys flush right.
func (m *Model) renderModeBar(width int) string {
	name := m.loom.ModeName()
	pending := m.loom.PendingKeys()
	if pending == "" {
		return m.styles.Mode.Render(name)
	}
	gap := max(width-lipgloss.Width(name)-lipgloss.Width(pending), 1)
	return m.styles.Mode.Render(name) + strings.Repeat(" ", gap) + m.styles.Pending.Render(pending)
}

// Grid classifies a width x height window of the world centred on center.
func Grid(l *loom.Loom, center models.Position, width, height int) [][]loom.Cell {
	startX := center.X - width/2
	startY := center.Y - height/2
	rows := make([][]loom.Cell, height)
	for y := range height {
		row := make([]loom.Cell, width)
		for x := range width {
			row[x] = l.CellAt(models.Pos(startX+x, startY+y))
		}
		rows[y] = row
	}
	return rows
}
