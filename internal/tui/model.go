// Package tui is the interactive terminal game, built on bubbletea.
//
// The model is a thin presentation layer: every keystroke is forwarded to
// the game session, which owns validation, persistence, and day rollover.
// Single-threaded within the bubbletea event loop.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RobOwenKing/twenty-eight/internal/game"
	"github.com/RobOwenKing/twenty-eight/internal/stats"
	"github.com/RobOwenKing/twenty-eight/internal/store"
	"github.com/RobOwenKing/twenty-eight/internal/variant"
)

// Model is the bubbletea model for a play session.
type Model struct {
	sess    *game.Session
	variant variant.Variant
	store   *store.Store

	// flash is the one-line verdict of the latest submission.
	flash    string
	flashBad bool

	// showStats overlays the aggregate stats page.
	showStats bool
	summary   stats.Summary

	width    int
	quitting bool
}

// NewModel creates the play model for an open session. The store is used
// only to read history for the stats overlay.
func NewModel(sess *game.Session, v variant.Variant, st *store.Store) Model {
	return Model{sess: sess, variant: v, store: st}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		if m.showStats {
			switch msg.String() {
			case "tab", "esc", "q":
				m.showStats = false
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			m.loadStats()
			m.showStats = true

		case "backspace":
			m.sess.Backspace()
			m.flash = ""

		case "enter":
			return m.submit()

		default:
			if msg.Type == tea.KeyRunes {
				for _, r := range msg.Runes {
					m.sess.Input(r)
				}
				m.flash = ""
			}
		}
	}

	return m, nil
}

// submit hands the current input to the session and turns the result into
// a flash line.
func (m Model) submit() (Model, tea.Cmd) {
	res, err := m.sess.Submit(context.Background())
	if err != nil {
		m.flash, m.flashBad = fmt.Sprintf("error: %v", err), true
		return m, nil
	}

	switch {
	case res.RolledOver:
		m.flash, m.flashBad = "a new day has begun, fresh digits dealt", false
	case res.Accepted:
		m.flash, m.flashBad = fmt.Sprintf("%d = %s", res.Target, res.Equation), false
		if m.sess.FullClear() {
			m.flash += "  full clear!"
		}
	default:
		m.flash, m.flashBad = res.Reject.Message, true
	}
	return m, nil
}

// loadStats reads the history for the stats overlay. A read failure shows
// as an empty summary; the overlay is informational only.
func (m *Model) loadStats() {
	rows, err := m.store.Scores(context.Background())
	if err != nil {
		rows = nil
	}
	m.summary = stats.FromHistory(rows, m.variant.Bands)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return fmt.Sprintf("Final score: %d. See you tomorrow.\n", m.sess.Score())
	}
	if m.showStats {
		return m.viewStats()
	}
	return m.viewGame()
}

func (m Model) viewGame() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.variant.Title))
	b.WriteString("  ")
	b.WriteString(dateStyle.Render(m.sess.Date()))
	b.WriteString("\n\n")

	for i, d := range m.sess.Digits() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(digitStyle.Render(fmt.Sprintf(" %d ", d)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderInput())
	b.WriteString("\n\n")

	b.WriteString(m.renderTargets())
	b.WriteString("\n")

	if m.flash != "" {
		style := flashOKStyle
		if m.flashBad {
			style = flashBadStyle
		}
		b.WriteString(style.Render(m.flash))
		b.WriteString("\n")
	}

	score := fmt.Sprintf("score %d/%d", m.sess.Score(), len(m.sess.Partition().Possibles))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(score + "  ·  enter submit · backspace delete · tab stats · q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderInput shows the typed expression with its live value.
func (m Model) renderInput() string {
	text := m.sess.Text()
	display := text
	if display == "" {
		display = " "
	}

	line := inputStyle.Render(display)
	if v, ok := m.sess.Value(); ok {
		line += valueStyle.Render(fmt.Sprintf(" = %s", formatValue(v)))
	} else if text != "" {
		line += noValueStyle.Render(" = ?")
	}
	return line
}

// renderTargets lays out the target board: every number in range, marked
// found, open, or impossible.
func (m Model) renderTargets() string {
	var b strings.Builder
	answers := m.sess.Answers()
	p := m.sess.Partition()

	perRow := 7
	for n := m.variant.TargetLow; n <= m.variant.TargetHigh; n++ {
		cell := fmt.Sprintf("%3d", n)
		switch {
		case answers[n] != "":
			b.WriteString(foundStyle.Render(cell))
		case !p.Possible(n):
			b.WriteString(impossibleStyle.Render(cell))
		default:
			b.WriteString(openStyle.Render(cell))
		}
		if (n-m.variant.TargetLow+1)%perRow == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func (m Model) viewStats() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Statistics"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Days played  %d\n", m.summary.DaysPlayed)
	fmt.Fprintf(&b, "Today        %d\n", m.summary.Today)
	fmt.Fprintf(&b, "Highest      %d\n", m.summary.Highest)
	fmt.Fprintf(&b, "Average      %.1f\n\n", m.summary.Average)

	b.WriteString("Last seven days\n")
	for i, score := range m.summary.LastSeven {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmt.Sprintf("%2d", score))
	}
	b.WriteString("\n\n")

	b.WriteString("All time\n")
	for _, band := range m.summary.Bands {
		label := fmt.Sprintf("%-6s", band.Label)
		if band.Current {
			label = currentBandStyle.Render(label)
		}
		fmt.Fprintf(&b, "%s %s %d\n", label, strings.Repeat("█", band.Count), band.Count)
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("tab close · ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}

// formatValue trims trailing zeros off a calculator value so 20.000000
// shows as 20 but 6.5 stays 6.5.
func formatValue(v float64) string {
	s := fmt.Sprintf("%.6f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Run drives the model to completion on the terminal.
func Run(sess *game.Session, v variant.Variant, st *store.Store) error {
	p := tea.NewProgram(NewModel(sess, v, st))
	_, err := p.Run()
	return err
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	digitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("57"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	noValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	foundStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	openStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	impossibleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Strikethrough(true)

	flashOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	flashBadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	currentBandStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
