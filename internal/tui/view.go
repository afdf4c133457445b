package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	menuStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).MarginBottom(1)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	statusStyle = lipgloss.NewStyle().MarginTop(1)
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("248"))
	dialogStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	hiddenStyle   = lipgloss.NewStyle().Background(lipgloss.Color("250")).Foreground(lipgloss.Color("240"))
	revealedStyle = lipgloss.NewStyle().Background(lipgloss.Color("255"))
	mineStyle     = lipgloss.NewStyle().Background(lipgloss.Color("#F08080")).Foreground(lipgloss.Color("0")).Bold(true)

	numberColors = []lipgloss.Color{
		lipgloss.Color("#0000FF"),
		lipgloss.Color("#008000"),
		lipgloss.Color("#FF0000"),
	}
	otherNumberColor = lipgloss.Color("#800080")
)

const instructions = `Uncover every cell that does not hide a mine.

A number tells how many mines touch that cell,
diagonals included. Uncovering an empty cell
opens its neighbours too. Uncover a mine and
the game is over.

Move with the arrow keys or h/j/k/l,
uncover with space or enter.`

const about = `Minesweeper
10x10 board with 8 mines`

func numberStyle(n int) lipgloss.Style {
	c := otherNumberColor
	if n-1 < len(numberColors) {
		c = numberColors[n-1]
	}
	return revealedStyle.Foreground(c).Bold(true)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.menu())
	b.WriteByte('\n')
	b.WriteString(boardStyle.Render(m.board()))
	b.WriteByte('\n')
	b.WriteString(statusStyle.Render("Timer:  " + m.session.Clock()))
	if m.err != nil {
		b.WriteByte('\n')
		b.WriteString(errorStyle.Render(m.err.Error()))
	}
	if d := m.dialogText(); d != "" {
		b.WriteByte('\n')
		b.WriteString(dialogStyle.Render(d))
	}
	b.WriteByte('\n')
	return b.String()
}

func (m Model) menu() string {
	items := []struct{ key, label string }{
		{"n", "new game"},
		{"s", "stats"},
		{"i", "instructions"},
		{"a", "about"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(items)+1)
	parts = append(parts, "Minesweeper")
	for _, it := range items {
		parts = append(parts, keyStyle.Render("["+it.key+"]")+" "+it.label)
	}
	return menuStyle.Render(strings.Join(parts, "  "))
}

func (m Model) board() string {
	g := m.session.Game()
	showMines := g.State() == mines.Lost

	rows := make([]string, 0, g.Height())
	for y := range g.Height() {
		var row strings.Builder
		for x := range g.Width() {
			p := mines.Point{X: x, Y: y}
			cell, err := g.Cell(p)
			if err != nil {
				continue
			}
			s := cellStyle(cell, showMines)
			text := " " + cellText(cell, showMines) + " "
			if p == m.cursor {
				s = s.Reverse(true)
			}
			row.WriteString(s.Render(text))
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

func cellText(c mines.Cell, showMines bool) string {
	switch {
	case c.Mine && (c.Revealed || showMines):
		return "*"
	case !c.Revealed:
		return " "
	case c.AdjacentMines == 0:
		return " "
	default:
		return strconv.Itoa(c.AdjacentMines)
	}
}

func cellStyle(c mines.Cell, showMines bool) lipgloss.Style {
	switch {
	case c.Mine && (c.Revealed || showMines):
		return mineStyle
	case !c.Revealed:
		return hiddenStyle
	case c.AdjacentMines == 0:
		return revealedStyle
	default:
		return numberStyle(c.AdjacentMines)
	}
}

func (m Model) dialogText() string {
	switch m.dialog {
	case dialogConfirmNewGame:
		return "Start a new game? (y/n)"
	case dialogConfirmQuit:
		return "Exit Minesweeper? (y/n)"
	case dialogStats:
		return m.session.Stats().Summary()
	case dialogInstructions:
		return instructions
	case dialogAbout:
		return about
	case dialogGameOver:
		return m.message + "\n\nenter: close  n: new game"
	}
	return ""
}
