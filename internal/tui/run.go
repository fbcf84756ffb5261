package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// termSize reads the current terminal dimensions so the first frame is
// sized correctly; bubbletea delivers resizes only after startup.
func termSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// Select presents items and returns the chosen index. Cancellation is
// an error so callers can unwind cleanly.
func Select(title string, items []Item) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	w, h := termSize()
	p := NewPicker(title, items, w, h)

	if _, err := tea.NewProgram(p).Run(); err != nil {
		return -1, fmt.Errorf("running picker: %w", err)
	}
	if p.Cancelled() || p.Choice() < 0 {
		return -1, fmt.Errorf("selection cancelled")
	}
	return p.Choice(), nil
}

// promptModel is the one-line free text prompt behind Input.
type promptModel struct {
	title     string
	input     textinput.Model
	done      bool
	cancelled bool
}

func (m *promptModel) Init() tea.Cmd { return textinput.Blink }

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *promptModel) View() string {
	return titleStyle.Render(m.title) + "\n" + m.input.View() + "\n" +
		helpStyle.Render("enter confirm · esc cancel")
}

// Input prompts for one line of text.
func Input(title string) (string, error) {
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.CharLimit = 200
	ti.Width = 40

	m := &promptModel{title: title, input: ti}
	m.input.Focus()

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}
	if m.cancelled {
		return "", fmt.Errorf("input cancelled")
	}
	value := m.input.Value()
	if value == "" {
		return "", fmt.Errorf("no input provided")
	}
	return value, nil
}

// Confirm asks a yes/no question.
func Confirm(title string) (bool, error) {
	idx, err := Select(title, []Item{{Label: "Yes"}, {Label: "No"}})
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}
