package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"loandesk/internal/schema"
)

// Form renders one step's fields and collects their values. Text fields are
// bubbles textinputs; enum fields are cycled selectors. The form never
// validates — that is the engine's job on forward navigation.
type Form struct {
	step    schema.StepID
	fields  []schema.Field
	inputs  []textinput.Model // parallel to fields; zero-valued for enums
	enumIdx []int             // selected option index, -1 = nothing chosen
	focus   int
	styles  Styles
}

// NewForm builds the form for a step, prefilled from the given payload.
func NewForm(step schema.StepID, defaults schema.Payload, styles Styles) Form {
	fields := schema.Fields(step)
	f := Form{
		step:    step,
		fields:  fields,
		inputs:  make([]textinput.Model, len(fields)),
		enumIdx: make([]int, len(fields)),
		styles:  styles,
	}

	for i, field := range fields {
		if field.Kind == schema.KindEnum {
			f.enumIdx[i] = optionIndex(field.Options, defaults[field.Name])
			continue
		}
		ti := textinput.New()
		ti.Placeholder = field.Placeholder
		ti.Prompt = ""
		ti.Width = 44
		ti.SetValue(defaults[field.Name])
		f.inputs[i] = ti
	}

	f.setFocus(0)
	return f
}

func optionIndex(opts []schema.Option, value string) int {
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// Step returns the step this form edits.
func (f Form) Step() schema.StepID { return f.step }

// Values snapshots the current field values as a payload.
func (f Form) Values() schema.Payload {
	p := make(schema.Payload, len(f.fields))
	for i, field := range f.fields {
		if field.Kind == schema.KindEnum {
			if f.enumIdx[i] >= 0 {
				p[field.Name] = field.Options[f.enumIdx[i]].Value
			} else {
				p[field.Name] = ""
			}
			continue
		}
		p[field.Name] = f.inputs[i].Value()
	}
	return p
}

// TextFocused reports whether the focused field is a text input. While it
// is, arrow keys belong to the input, not to step navigation.
func (f Form) TextFocused() bool {
	if len(f.fields) == 0 {
		return false
	}
	return f.fields[f.focus].Kind != schema.KindEnum
}

// AtLastField reports whether focus sits on the final field.
func (f Form) AtLastField() bool { return f.focus == len(f.fields)-1 }

// FocusNext moves focus to the next field, wrapping at the end.
func (f Form) FocusNext() Form {
	f.setFocus((f.focus + 1) % len(f.fields))
	return f
}

// FocusPrev moves focus to the previous field, wrapping at the start.
func (f Form) FocusPrev() Form {
	f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))
	return f
}

func (f *Form) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i && f.fields[j].Kind != schema.KindEnum {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// CycleOption advances the focused enum selector by delta (wrapping). A
// no-op when the focused field is not an enum.
func (f Form) CycleOption(delta int) Form {
	field := f.fields[f.focus]
	if field.Kind != schema.KindEnum {
		return f
	}
	n := len(field.Options)
	f.enumIdx[f.focus] = ((f.enumIdx[f.focus]+delta)%n + n) % n
	return f
}

// Update forwards messages to the focused text input.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if f.TextFocused() {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd
	}
	return f, nil
}

// View renders all fields, one per line, with the focused field
// highlighted.
func (f Form) View() string {
	var b strings.Builder
	for i, field := range f.fields {
		label := field.Label
		if !field.Optional {
			label += " *"
		}
		if i == f.focus {
			b.WriteString(f.styles.FieldFocused.Render("▸ " + label))
		} else {
			b.WriteString(f.styles.FieldLabel.Render("  " + label))
		}
		b.WriteString("\n    ")

		if field.Kind == schema.KindEnum {
			b.WriteString(f.renderEnum(i, field))
		} else {
			b.WriteString(f.inputs[i].View())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (f Form) renderEnum(i int, field schema.Field) string {
	if f.enumIdx[i] < 0 {
		hint := "(space to choose)"
		if i == f.focus {
			return f.styles.OptionOn.Render("‹ select ›") + " " + f.styles.Muted.Render(hint)
		}
		return f.styles.OptionOff.Render("‹ select ›")
	}
	selected := field.Options[f.enumIdx[i]].Label
	pos := fmt.Sprintf("(%d/%d)", f.enumIdx[i]+1, len(field.Options))
	if i == f.focus {
		return f.styles.OptionOn.Render("‹ "+selected+" ›") + " " + f.styles.Muted.Render(pos)
	}
	return f.styles.OptionOff.Render(selected)
}
