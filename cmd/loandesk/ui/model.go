package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"loandesk/internal/draft"
	"loandesk/internal/logging"
	"loandesk/internal/schema"
	"loandesk/internal/submit"
	"loandesk/internal/wizard"
)

// Dispatcher is the submit-time collaborator the model depends on. The
// concrete dispatcher is injected at assembly time; tests substitute fakes.
type Dispatcher interface {
	Dispatch(ctx context.Context, personal, property, loan schema.Payload) (*submit.Result, error)
}

// submitResultMsg carries the dispatch outcome back onto the event loop.
type submitResultMsg struct {
	res *submit.Result
	err error
}

// Model is the wizard orchestrator: it owns the engine, wires the draft
// manager and dispatcher, and renders exactly one page per state.
type Model struct {
	engine   *wizard.Engine
	drafts   *draft.Manager
	dispatch Dispatcher
	styles   Styles
	log      *logging.Logger

	title       string
	description string

	form    Form
	spinner spinner.Model

	// Retained for the confirmation page after the record is discarded.
	applicantName string
	applicationID string

	width    int
	quitting bool
}

// NewModel assembles the wizard. A fresh draft inside the freshness window
// hydrates step data only: navigation always restarts at the first step.
func NewModel(engine *wizard.Engine, drafts *draft.Manager, dispatch Dispatcher, styles Styles, title, description string, log *logging.Logger) Model {
	if snap, err := drafts.Load(); err == nil {
		engine.Hydrate(snap.PersonalInfo, snap.PropertyDetails, snap.LoanRequirements)
		log.Info("draft restored from %s", snap.LastUpdated)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StepActive

	return Model{
		engine:      engine,
		drafts:      drafts,
		dispatch:    dispatch,
		styles:      styles,
		log:         log,
		title:       title,
		description: description,
		form:        NewForm(schema.StepPersonal, engine.Data(schema.StepPersonal), styles),
		spinner:     sp,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update is the single mutation path for all wizard state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.engine.Status() == wizard.SubmissionInFlight {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case submitResultMsg:
		return m.finishSubmit(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// Terminal confirmation page: only exit remains.
	if m.engine.AtTerminal() {
		if key == "q" || key == "enter" || key == "esc" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// All navigation and submit controls are disabled while a submission
	// is in flight; at most one submission per wizard instance.
	if m.engine.Status() == wizard.SubmissionInFlight {
		return m, nil
	}

	if m.engine.Current() == wizard.ReviewIndex {
		return m.handleReviewKey(key)
	}
	return m.handleFormKey(msg, key)
}

func (m Model) handleReviewKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		return m.beginSubmit()
	case "left", "h":
		m.engine.Previous()
		return m.rebuildForm(), nil
	case "1", "2", "3":
		target := int(key[0] - '1')
		if m.engine.GoTo(target) {
			return m.rebuildForm(), nil
		}
		return m, nil
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	textFocused := m.form.TextFocused()

	switch key {
	case "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "down":
		m.form = m.form.FocusNext()
		return m, nil
	case "shift+tab", "up":
		m.form = m.form.FocusPrev()
		return m, nil
	case "enter":
		if m.form.AtLastField() {
			return m.tryNext(), nil
		}
		m.form = m.form.FocusNext()
		return m, nil
	}

	// Keys below double as text while a text input has focus.
	if !textFocused {
		switch key {
		case " ":
			m.form = m.form.CycleOption(1)
			return m, nil
		case "right", "l":
			return m.tryNext(), nil
		case "left", "h":
			m.engine.SetData(m.form.Step(), m.form.Values())
			m.engine.Previous()
			return m.rebuildForm(), nil
		case "1", "2", "3", "4":
			m.engine.SetData(m.form.Step(), m.form.Values())
			if m.engine.GoTo(int(key[0] - '1')) {
				return m.rebuildForm(), nil
			}
			return m, nil
		case "q":
			m.quitting = true
			return m, tea.Quit
		}
	} else if key == "right" || key == "left" || key == " " {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// tryNext commits the form values and attempts forward navigation. On
// success the draft is saved; on validation failure the engine holds
// position and its error list drives the banner.
func (m Model) tryNext() Model {
	step := m.form.Step()
	m.engine.SetData(step, m.form.Values())

	if m.engine.Next() {
		m.saveDraft()
		return m.rebuildForm()
	}
	m.log.Debug("validation failed on %s: %d error(s)", step, len(m.engine.Errors()))
	return m
}

// rebuildForm constructs the form for the engine's current step. On the
// Review page the form is left untouched; its step no longer matters.
func (m Model) rebuildForm() Model {
	cur := m.engine.Current()
	if cur < wizard.ReviewIndex {
		m.form = NewForm(schema.StepID(cur), m.engine.Data(schema.StepID(cur)), m.styles)
	}
	return m
}

// saveDraft persists all three step payloads. Fired deliberately after each
// successful step commit, never implicitly.
func (m Model) saveDraft() {
	m.drafts.Save(
		m.engine.Data(schema.StepPersonal),
		m.engine.Data(schema.StepProperty),
		m.engine.Data(schema.StepLoan),
	)
}

// beginSubmit flips the in-flight guard and launches the dispatch off the
// UI loop. Payload copies are taken up front; the engine stays untouched
// until the result message lands.
func (m Model) beginSubmit() (tea.Model, tea.Cmd) {
	if !m.engine.BeginSubmit() {
		return m, nil
	}

	personal := m.engine.Data(schema.StepPersonal)
	property := m.engine.Data(schema.StepProperty)
	loan := m.engine.Data(schema.StepLoan)
	dispatch := m.dispatch

	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			res, err := dispatch.Dispatch(context.Background(), personal, property, loan)
			return submitResultMsg{res: res, err: err}
		},
	)
}

// finishSubmit applies the dispatch outcome. Success clears the draft and
// enters the terminal state; failure stays on Review with a retryable
// banner and the draft intact.
func (m Model) finishSubmit(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.engine.FinishSubmit(msg.err)
	if msg.err != nil {
		m.log.Warn("submission failed: %v", msg.err)
		return m, nil
	}

	m.applicantName = msg.res.Record.ApplicantName()
	m.applicationID = msg.res.Record.ApplicationID
	if msg.res.Degraded {
		m.log.Warn("submission %s accepted with degraded notification", m.applicationID)
	}
	m.drafts.Clear()
	return m, nil
}

// View renders the page for the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	out := m.styles.Header.Render(m.title) + "\n"
	out += m.styles.Description.Render(m.description) + "\n"

	if m.engine.AtTerminal() {
		return out + RenderConfirmation(m.styles, m.applicantName, m.applicationID, m.width)
	}

	out += RenderProgress(m.styles, m.engine.Current(), m.engine.Completed) + "\n\n"

	if errs := m.engine.Errors(); len(errs) > 0 {
		out += m.styles.ErrorBanner.Render("Please fix the following:") + "\n"
		for _, e := range errs {
			out += m.styles.ErrorItem.Render("  • "+e) + "\n"
		}
		out += "\n"
	}
	if m.engine.Status() == wizard.SubmissionFailed && m.engine.SubmitError() != "" {
		out += m.styles.ErrorBanner.Render(m.engine.SubmitError()) + "\n\n"
	}

	if m.engine.Current() == wizard.ReviewIndex {
		out += RenderReview(m.styles, schema.ReviewProjection(
			m.engine.Data(schema.StepPersonal),
			m.engine.Data(schema.StepProperty),
			m.engine.Data(schema.StepLoan),
		))
	} else {
		out += m.form.View()
	}

	if m.engine.Status() == wizard.SubmissionInFlight {
		out += "\n" + m.spinner.View() + m.styles.Muted.Render(" Submitting your application...")
	}

	out += "\n" + m.styles.Footer.Render(m.footerHint())
	return out
}

func (m Model) footerHint() string {
	if m.engine.Status() == wizard.SubmissionInFlight {
		return "Please wait..."
	}
	if m.engine.Current() == wizard.ReviewIndex {
		return "enter submit · 1/2/3 edit section · ← back · q quit"
	}
	return "tab/↑↓ fields · space change selection · →/← step · enter next · q quit"
}
