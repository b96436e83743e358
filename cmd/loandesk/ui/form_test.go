package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"loandesk/internal/schema"
)

func TestNewFormPrefillsDefaults(t *testing.T) {
	f := NewForm(schema.StepPersonal, schema.Payload{
		"firstName":   "Jane",
		"creditScore": "good",
	}, DefaultStyles())

	vals := f.Values()
	assert.Equal(t, "Jane", vals["firstName"])
	assert.Equal(t, "good", vals["creditScore"])
}

func TestUnselectedEnumReadsEmpty(t *testing.T) {
	f := NewForm(schema.StepLoan, schema.Payload{}, DefaultStyles())
	assert.Equal(t, "", f.Values()["loanPurpose"])
}

func TestCycleOptionWraps(t *testing.T) {
	f := NewForm(schema.StepLoan, schema.Payload{}, DefaultStyles())

	// Move focus to the loanPurpose selector.
	f = f.FocusNext()
	assert.False(t, f.TextFocused())

	f = f.CycleOption(1)
	assert.Equal(t, "purchase", f.Values()["loanPurpose"])

	// Cycling backward from the first option lands on the last.
	f = f.CycleOption(-1)
	assert.Equal(t, "other", f.Values()["loanPurpose"])
}

func TestCycleOptionIgnoredOnTextField(t *testing.T) {
	f := NewForm(schema.StepPersonal, schema.Payload{}, DefaultStyles())
	before := f.Values()
	f = f.CycleOption(1)
	assert.Equal(t, before, f.Values())
}

func TestFocusWrapsBothDirections(t *testing.T) {
	f := NewForm(schema.StepPersonal, schema.Payload{}, DefaultStyles())
	n := len(schema.Fields(schema.StepPersonal))

	f = f.FocusPrev()
	assert.True(t, f.AtLastField())

	for i := 0; i < n; i++ {
		f = f.FocusNext()
	}
	assert.True(t, f.AtLastField())
}

func TestTypingReachesFocusedInput(t *testing.T) {
	f := NewForm(schema.StepPersonal, schema.Payload{}, DefaultStyles())
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Jane")})
	assert.Equal(t, "Jane", f.Values()["firstName"])

	// A blurred input must not receive keystrokes.
	f = f.FocusNext()
	f = f.FocusPrev()
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" Q")})
	assert.Equal(t, "Jane Q", f.Values()["firstName"])
}

func TestViewMarksRequiredFields(t *testing.T) {
	f := NewForm(schema.StepPersonal, schema.Payload{}, DefaultStyles())
	view := f.View()
	assert.Contains(t, view, "First Name *")
	assert.Contains(t, view, "Credit Score Range")
	assert.NotContains(t, view, "Credit Score Range *")
}
