// Package tui implements the interactive terminal pickers: a filterable
// single-select list used for movies, servers and episodes, and a free
// text prompt. The model logic is plain state transitions so it can be
// exercised without a terminal.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item is one selectable row. Detail renders dimmed after the label.
type Item struct {
	Label  string
	Detail string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// Picker is a filterable single-select list model.
type Picker struct {
	title  string
	items  []Item
	width  int
	height int

	cursor   int
	offset   int   // first visible row
	visible  []int // indexes into items matching the filter
	filter   textinput.Model
	filterOn bool

	choice    int // index into items, -1 until chosen
	cancelled bool
}

// NewPicker creates a picker over items.
func NewPicker(title string, items []Item, width, height int) *Picker {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.CharLimit = 100
	ti.Width = 30

	p := &Picker{
		title:  title,
		items:  items,
		width:  width,
		height: height,
		filter: ti,
		choice: -1,
	}
	p.refilter()
	return p
}

func (p *Picker) Init() tea.Cmd { return nil }

// Choice returns the selected item index, or -1 when cancelled or still
// open.
func (p *Picker) Choice() int {
	if p.cancelled {
		return -1
	}
	return p.choice
}

// Cancelled reports whether the picker was dismissed without a choice.
func (p *Picker) Cancelled() bool { return p.cancelled }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.clampScroll()
		return p, nil

	case tea.KeyMsg:
		if p.filterOn {
			return p.updateFilter(msg)
		}
		return p.updateList(msg)
	}
	return p, nil
}

func (p *Picker) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		p.cancelled = true
		return p, tea.Quit

	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
		p.clampScroll()

	case "down", "j":
		if p.cursor < len(p.visible)-1 {
			p.cursor++
		}
		p.clampScroll()

	case "pgup":
		p.cursor -= p.pageSize()
		if p.cursor < 0 {
			p.cursor = 0
		}
		p.clampScroll()

	case "pgdown":
		p.cursor += p.pageSize()
		if p.cursor > len(p.visible)-1 {
			p.cursor = len(p.visible) - 1
		}
		if p.cursor < 0 {
			p.cursor = 0
		}
		p.clampScroll()

	case "g", "home":
		p.cursor = 0
		p.clampScroll()

	case "G", "end":
		if len(p.visible) > 0 {
			p.cursor = len(p.visible) - 1
		}
		p.clampScroll()

	case "/":
		p.filterOn = true
		return p, p.filter.Focus()

	case "enter":
		if len(p.visible) > 0 {
			p.choice = p.visible[p.cursor]
			return p, tea.Quit
		}
	}
	return p, nil
}

func (p *Picker) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.filterOn = false
		p.filter.Blur()
		p.filter.SetValue("")
		p.refilter()
		return p, nil

	case "enter":
		p.filterOn = false
		p.filter.Blur()
		return p, nil

	case "ctrl+c":
		p.cancelled = true
		return p, tea.Quit
	}

	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.refilter()
	return p, cmd
}

// refilter rebuilds the visible index list for the current filter text
// and keeps the cursor on a valid row.
func (p *Picker) refilter() {
	query := strings.ToLower(strings.TrimSpace(p.filter.Value()))
	p.visible = p.visible[:0]
	for i, item := range p.items {
		if query == "" || strings.Contains(strings.ToLower(item.Label), query) {
			p.visible = append(p.visible, i)
		}
	}
	if p.cursor > len(p.visible)-1 {
		p.cursor = len(p.visible) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.clampScroll()
}

func (p *Picker) pageSize() int {
	// Title, filter line and help line take four rows.
	n := p.height - 4
	if n < 1 {
		n = 1
	}
	return n
}

func (p *Picker) clampScroll() {
	page := p.pageSize()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+page {
		p.offset = p.cursor - page + 1
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

func (p *Picker) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.title))
	b.WriteString("\n")

	if p.filterOn || p.filter.Value() != "" {
		b.WriteString(p.filter.View())
		b.WriteString("\n")
	}

	page := p.pageSize()
	end := p.offset + page
	if end > len(p.visible) {
		end = len(p.visible)
	}

	if len(p.visible) == 0 {
		b.WriteString(detailStyle.Render("  nothing matches"))
		b.WriteString("\n")
	}

	for row := p.offset; row < end; row++ {
		item := p.items[p.visible[row]]
		line := item.Label
		if item.Detail != "" {
			line += "  " + detailStyle.Render(item.Detail)
		}
		if row == p.cursor {
			b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter select · / filter · q quit"))
	return b.String()
}
