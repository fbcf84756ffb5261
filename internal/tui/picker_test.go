package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(p *Picker, keys ...string) {
	for _, k := range keys {
		p.Update(key(k))
	}
}

func testItems() []Item {
	return []Item{
		{Label: "Vietsub #1"},
		{Label: "Vietsub #2"},
		{Label: "Thuyết Minh"},
	}
}

func TestPickerSelect(t *testing.T) {
	p := NewPicker("Server", testItems(), 80, 24)

	press(p, "down", "enter")
	if p.Cancelled() {
		t.Fatal("picker should not be cancelled")
	}
	if p.Choice() != 1 {
		t.Errorf("choice = %d, want 1", p.Choice())
	}
}

func TestPickerCancel(t *testing.T) {
	p := NewPicker("Server", testItems(), 80, 24)

	press(p, "q")
	if !p.Cancelled() {
		t.Fatal("q should cancel")
	}
	if p.Choice() != -1 {
		t.Errorf("choice = %d, want -1 after cancel", p.Choice())
	}
}

func TestPickerCursorBounds(t *testing.T) {
	p := NewPicker("Server", testItems(), 80, 24)

	press(p, "up", "up")
	if p.cursor != 0 {
		t.Errorf("cursor = %d, want clamp at 0", p.cursor)
	}
	press(p, "down", "down", "down", "down")
	if p.cursor != 2 {
		t.Errorf("cursor = %d, want clamp at last row", p.cursor)
	}
	press(p, "g")
	if p.cursor != 0 {
		t.Errorf("cursor = %d after g, want 0", p.cursor)
	}
	press(p, "G")
	if p.cursor != 2 {
		t.Errorf("cursor = %d after G, want 2", p.cursor)
	}
}

func TestPickerFilter(t *testing.T) {
	p := NewPicker("Server", testItems(), 80, 24)

	press(p, "/", "t", "h", "u", "enter") // filter "thu", confirm filter
	if len(p.visible) != 1 {
		t.Fatalf("visible = %d, want 1 match", len(p.visible))
	}
	press(p, "enter")
	if p.Choice() != 2 {
		t.Errorf("choice = %d, want original index of the match", p.Choice())
	}
}

func TestPickerFilterNoMatch(t *testing.T) {
	p := NewPicker("Server", testItems(), 80, 24)

	press(p, "/", "z", "z", "enter")
	if len(p.visible) != 0 {
		t.Fatalf("visible = %d, want 0", len(p.visible))
	}
	press(p, "enter") // nothing to choose
	if p.Choice() != -1 {
		t.Errorf("choice = %d, want none", p.Choice())
	}
}

func TestPickerFilterReset(t *testing.T) {
	p := NewPicker("Server", testItems(), 80, 24)

	press(p, "/", "t", "h", "u")
	press(p, "esc") // drop the filter entirely
	if len(p.visible) != 3 {
		t.Errorf("visible = %d after filter reset, want all", len(p.visible))
	}
}

func TestPickerScrollWindow(t *testing.T) {
	items := make([]Item, 50)
	for i := range items {
		items[i] = Item{Label: "row"}
	}
	p := NewPicker("Long", items, 80, 10)

	press(p, "G")
	if p.cursor != 49 {
		t.Fatalf("cursor = %d", p.cursor)
	}
	page := p.pageSize()
	if p.offset != 49-page+1 {
		t.Errorf("offset = %d, want cursor kept in view", p.offset)
	}
}
