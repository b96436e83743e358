package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loandesk/internal/draft"
	"loandesk/internal/logging"
	"loandesk/internal/schema"
	"loandesk/internal/submit"
	"loandesk/internal/wizard"
)

// ---------------------------------------------------------------------------
// Fixtures and helpers
// ---------------------------------------------------------------------------

var (
	validPersonal = schema.Payload{
		"firstName": "Jane",
		"lastName":  "Borrower",
		"email":     "jane@example.com",
		"phone":     "5125550147",
		"address":   "100 Congress Ave",
		"city":      "Austin",
		"state":     "TX",
		"zipCode":   "78701",
	}
	validProperty = schema.Payload{
		"propertyAddress": "42 Ranch Road",
		"propertyCity":    "Austin",
		"propertyState":   "TX",
		"propertyZip":     "78702",
		"propertyValue":   "450000",
		"purchasePrice":   "425000",
		"yearBuilt":       "1998",
		"squareFootage":   "2100",
	}
	validLoan = schema.Payload{
		"loanAmount": "300000",
	}
)

func stepValues(step schema.StepID) schema.Payload {
	switch step {
	case schema.StepPersonal:
		return validPersonal
	case schema.StepProperty:
		return validProperty
	default:
		return validLoan
	}
}

type fakeDispatcher struct {
	res   *submit.Result
	err   error
	calls int
}

func (f *fakeDispatcher) Dispatch(_ context.Context, personal, property, loan schema.Payload) (*submit.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func acceptedResult(degraded bool) *submit.Result {
	rec := submit.NewRecord(validPersonal, validProperty, validLoan, time.UnixMilli(1700000123456))
	return &submit.Result{
		Record:   rec,
		SinkID:   "notion-page-1",
		Degraded: degraded,
	}
}

func newTestModel(t *testing.T, dispatch Dispatcher) (Model, *wizard.Engine, *draft.Manager) {
	t.Helper()
	store, err := draft.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mgr := draft.NewManager(store, logging.Nop())
	eng := wizard.New(schema.Validate)
	m := NewModel(eng, mgr, dispatch, DefaultStyles(), "Hard Money Mortgage Loan Application", "Get funded fast", logging.Nop())
	return m, eng, mgr
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// fillCurrentStep types the fixture values into every text field of the
// active form, tabs through enum fields (their first option is valid), and
// commits the step with enter on the last field.
func fillCurrentStep(t *testing.T, m Model) Model {
	t.Helper()
	values := stepValues(m.form.Step())
	fields := schema.Fields(m.form.Step())
	for i, f := range fields {
		if v, ok := values[f.Name]; ok {
			m, _ = press(t, m, v)
		}
		if f.Kind == schema.KindEnum && !f.Optional {
			m, _ = press(t, m, " ")
		}
		if i < len(fields)-1 {
			m, _ = press(t, m, "tab")
		}
	}
	m, _ = press(t, m, "enter")
	return m
}

func advanceToReview(t *testing.T, m Model, eng *wizard.Engine) Model {
	t.Helper()
	for i := 0; i < 3; i++ {
		m = fillCurrentStep(t, m)
	}
	require.Equal(t, wizard.ReviewIndex, eng.Current())
	return m
}

// deliver executes a command tree and feeds every resulting message back
// through Update, the way the runtime would.
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	queue := []tea.Msg{cmd()}
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				if c != nil {
					queue = append(queue, c())
				}
			}
			continue
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestModelStartsAtFirstStep(t *testing.T) {
	m, eng, _ := newTestModel(t, &fakeDispatcher{})
	assert.Equal(t, int(schema.StepPersonal), eng.Current())
	assert.Contains(t, m.View(), "First Name")
	assert.Contains(t, m.View(), "Personal")
}

func TestValidationBlocksForwardAndShowsBanner(t *testing.T) {
	m, eng, _ := newTestModel(t, &fakeDispatcher{})

	fields := schema.Fields(schema.StepPersonal)
	for i := 0; i < len(fields)-1; i++ {
		m, _ = press(t, m, "tab")
	}
	m, _ = press(t, m, "enter")

	assert.Equal(t, int(schema.StepPersonal), eng.Current())
	assert.NotEmpty(t, eng.Errors())
	assert.Contains(t, m.View(), "Please fix the following:")
}

func TestBackwardNavigationAlwaysAllowed(t *testing.T) {
	m, eng, _ := newTestModel(t, &fakeDispatcher{})
	m = fillCurrentStep(t, m)
	require.Equal(t, int(schema.StepProperty), eng.Current())

	// Focus starts on a text field, so move to the property-type enum
	// first; left is a navigation key only outside text inputs.
	for m.form.TextFocused() {
		m, _ = press(t, m, "tab")
	}
	m, _ = press(t, m, "left")

	assert.Equal(t, int(schema.StepPersonal), eng.Current())
	assert.Equal(t, "Jane", m.form.Values()["firstName"])
}

func TestEditFromReviewKeepsCompletion(t *testing.T) {
	m, eng, _ := newTestModel(t, &fakeDispatcher{})
	m = advanceToReview(t, m, eng)

	m, _ = press(t, m, "2")
	assert.Equal(t, int(schema.StepProperty), eng.Current())
	for s := schema.StepPersonal; s <= schema.StepLoan; s++ {
		assert.True(t, eng.Completed(s), "step %d should stay completed", s)
	}
	assert.Equal(t, "42 Ranch Road", m.form.Values()["propertyAddress"])
}

func TestSuccessfulSubmissionReachesConfirmation(t *testing.T) {
	dispatch := &fakeDispatcher{res: acceptedResult(false)}
	m, eng, mgr := newTestModel(t, dispatch)
	m = advanceToReview(t, m, eng)

	// The draft written while stepping forward is still on disk.
	_, err := mgr.Load()
	require.NoError(t, err)

	m, cmd := press(t, m, "enter")
	require.Equal(t, wizard.SubmissionInFlight, eng.Status())
	m = deliver(t, m, cmd)

	assert.Equal(t, 1, dispatch.calls)
	assert.Equal(t, wizard.SubmissionSucceeded, eng.Status())
	assert.True(t, eng.AtTerminal())
	assert.Contains(t, m.View(), "LN-123456")
	assert.Contains(t, m.View(), "Jane Borrower")

	_, err = mgr.Load()
	assert.ErrorIs(t, err, draft.ErrNoDraft)
}

func TestPrimaryFailureStaysOnReviewWithDraft(t *testing.T) {
	dispatch := &fakeDispatcher{err: errors.New("notion: 503")}
	m, eng, mgr := newTestModel(t, dispatch)
	m = advanceToReview(t, m, eng)

	m, cmd := press(t, m, "enter")
	m = deliver(t, m, cmd)

	assert.Equal(t, wizard.SubmissionFailed, eng.Status())
	assert.Equal(t, wizard.ReviewIndex, eng.Current())
	assert.Contains(t, m.View(), "There was an error submitting your application. Please try again.")

	_, err := mgr.Load()
	assert.NoError(t, err, "draft must survive a failed submission")

	// Retry is allowed after a failure.
	m, cmd = press(t, m, "enter")
	dispatch.err = nil
	dispatch.res = acceptedResult(false)
	m = deliver(t, m, cmd)
	assert.True(t, eng.AtTerminal())
}

func TestDegradedNotificationStillSucceeds(t *testing.T) {
	dispatch := &fakeDispatcher{res: acceptedResult(true)}
	m, eng, mgr := newTestModel(t, dispatch)
	m = advanceToReview(t, m, eng)

	m, cmd := press(t, m, "enter")
	m = deliver(t, m, cmd)

	assert.True(t, eng.AtTerminal())
	view := m.View()
	assert.Contains(t, view, "LN-123456")
	assert.NotContains(t, view, "There was an error submitting")

	_, err := mgr.Load()
	assert.ErrorIs(t, err, draft.ErrNoDraft)
}

func TestInFlightLocksAllControls(t *testing.T) {
	m, eng, _ := newTestModel(t, &fakeDispatcher{res: acceptedResult(false)})
	m = advanceToReview(t, m, eng)

	m, _ = press(t, m, "enter")
	require.Equal(t, wizard.SubmissionInFlight, eng.Status())

	m, _ = press(t, m, "left")
	assert.Equal(t, wizard.ReviewIndex, eng.Current())
	m, _ = press(t, m, "1")
	assert.Equal(t, wizard.ReviewIndex, eng.Current())

	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd, "no second submission while one is in flight")
	assert.Contains(t, m.View(), "Submitting your application")
}

func TestHydrationRestoresDataButRestartsAtFirstStep(t *testing.T) {
	store, err := draft.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	mgr := draft.NewManager(store, logging.Nop())
	mgr.Save(validPersonal, validProperty, schema.Payload{})

	eng := wizard.New(schema.Validate)
	m := NewModel(eng, mgr, &fakeDispatcher{}, DefaultStyles(), "t", "d", logging.Nop())

	assert.Equal(t, int(schema.StepPersonal), eng.Current())
	assert.False(t, eng.Completed(schema.StepPersonal))
	assert.Equal(t, "Jane", m.form.Values()["firstName"])
	assert.Equal(t, "42 Ranch Road", eng.Data(schema.StepProperty)["propertyAddress"])
}

func TestTerminalPageOnlyExits(t *testing.T) {
	m, eng, _ := newTestModel(t, &fakeDispatcher{res: acceptedResult(false)})
	m = advanceToReview(t, m, eng)
	m, cmd := press(t, m, "enter")
	m = deliver(t, m, cmd)
	require.True(t, eng.AtTerminal())

	m, cmd = press(t, m, "left")
	assert.Nil(t, cmd)
	assert.True(t, eng.AtTerminal())

	_, cmd = press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestQuitKeys(t *testing.T) {
	m, _, _ := newTestModel(t, &fakeDispatcher{})
	_, cmd := press(t, m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
