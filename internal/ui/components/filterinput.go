package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pyqdeck/internal/ui/theme"
)

// FilterInput wraps bubbles/textinput for incremental text filtering of
// question lists.
type FilterInput struct {
	Model  textinput.Model
	active bool
}

// NewFilterInput creates a new styled filter input.
func NewFilterInput(placeholder string) FilterInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	return FilterInput{Model: ti}
}

// Activate focuses the input for typing.
func (f *FilterInput) Activate() tea.Cmd {
	f.active = true
	return f.Model.Focus()
}

// Deactivate blurs the input, keeping its value applied.
func (f *FilterInput) Deactivate() {
	f.active = false
	f.Model.Blur()
}

// Clear resets the filter text.
func (f *FilterInput) Clear() {
	f.Model.SetValue("")
}

// Active reports whether the input currently captures keystrokes.
func (f FilterInput) Active() bool {
	return f.active
}

// Update handles messages while the input is active.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	if !f.active {
		return f, nil
	}
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the filter input.
func (f FilterInput) View() string {
	prefix := theme.Hint.Render("filter: ")
	if f.active {
		prefix = theme.Selected.Render("filter: ")
	}
	return prefix + f.Model.View()
}

// Value returns the current filter text.
func (f FilterInput) Value() string {
	return f.Model.Value()
}
