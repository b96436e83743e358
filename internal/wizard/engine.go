// Package wizard implements the step navigation state machine for the loan
// application flow. The engine is pure state: it knows nothing about
// terminals, drafts, or sinks, which keeps every transition testable as a
// plain function call.
package wizard

import (
	"loandesk/internal/schema"
)

// ReviewIndex is the last navigable step; TerminalIndex is the virtual
// confirmation state reached only through a successful submission.
const (
	ReviewIndex   = int(schema.StepReview)
	TerminalIndex = ReviewIndex + 1
)

// SubmissionStatus tracks the final-submit lifecycle.
type SubmissionStatus int

const (
	SubmissionIdle SubmissionStatus = iota
	SubmissionInFlight
	SubmissionSucceeded
	SubmissionFailed
)

// Validator gates forward navigation. It must be pure; the engine may call
// it repeatedly for the same payload.
type Validator func(step schema.StepID, p schema.Payload) (schema.Payload, []schema.FieldError)

// Engine owns all wizard state. All mutation flows through its methods;
// user-input problems are normal outcomes, never errors.
type Engine struct {
	current   int
	data      map[schema.StepID]schema.Payload
	completed map[schema.StepID]bool
	errors    []string
	status    SubmissionStatus
	submitErr string
	validate  Validator
}

// New returns an engine positioned at the first step with empty payloads.
func New(validate Validator) *Engine {
	return &Engine{
		data: map[schema.StepID]schema.Payload{
			schema.StepPersonal: {},
			schema.StepProperty: {},
			schema.StepLoan:     {},
		},
		completed: make(map[schema.StepID]bool),
		validate:  validate,
	}
}

// Current returns the active step index, TerminalIndex after a successful
// submission.
func (e *Engine) Current() int { return e.current }

// AtTerminal reports whether the confirmation state has been reached.
func (e *Engine) AtTerminal() bool { return e.current >= TerminalIndex }

// Data returns the stored payload for a step. Callers get a copy; the
// engine's copy only changes through SetData or a successful Next.
func (e *Engine) Data(step schema.StepID) schema.Payload {
	return e.data[step].Clone()
}

// SetData replaces a step's payload without validating it. Used for form
// edits in progress and for draft hydration; completion flags are untouched.
func (e *Engine) SetData(step schema.StepID, p schema.Payload) {
	if step >= 0 && int(step) < schema.DataSteps {
		e.data[step] = p.Clone()
	}
}

// Hydrate restores step payloads from a saved draft. Navigation always
// restarts at step 0: completion flags and the current index are never
// resurrected from disk.
func (e *Engine) Hydrate(personal, property, loan schema.Payload) {
	if personal != nil {
		e.data[schema.StepPersonal] = personal.Clone()
	}
	if property != nil {
		e.data[schema.StepProperty] = property.Clone()
	}
	if loan != nil {
		e.data[schema.StepLoan] = loan.Clone()
	}
}

// Completed reports whether a step has passed validation at least once.
// Editing a completed step never un-completes it.
func (e *Engine) Completed(step schema.StepID) bool { return e.completed[step] }

// Errors returns the ordered validation messages from the last failed
// forward attempt, formatted "{field} - {message}".
func (e *Engine) Errors() []string { return e.errors }

// Next validates the current step's payload. On success the normalized
// payload is stored, the step is marked complete, errors clear, and the
// index advances (clamped to the Review step). On failure the index holds
// and the error list is populated. Returns true when the step advanced.
func (e *Engine) Next() bool {
	if e.status == SubmissionInFlight || e.AtTerminal() {
		return false
	}
	if e.current >= ReviewIndex {
		return false
	}

	step := schema.StepID(e.current)
	normalized, errs := e.validate(step, e.data[step])
	if len(errs) > 0 {
		e.errors = schema.Strings(errs)
		return false
	}

	e.data[step] = normalized
	e.completed[step] = true
	e.errors = nil
	e.current++
	return true
}

// Previous moves back one step unconditionally, clamped at the first step.
// No validation runs; errors clear either way.
func (e *Engine) Previous() {
	if e.status == SubmissionInFlight || e.AtTerminal() {
		return
	}
	e.errors = nil
	if e.current > 0 {
		e.current--
	}
}

// GoTo jumps directly to a step. Permitted only backward or onto a step
// already marked complete; anything else is a no-op, so users can never
// click forward into unvalidated territory.
func (e *Engine) GoTo(step int) bool {
	if e.status == SubmissionInFlight || e.AtTerminal() {
		return false
	}
	if step < 0 || step > ReviewIndex {
		return false
	}
	if step >= e.current && !e.completed[schema.StepID(step)] {
		return false
	}
	e.current = step
	e.errors = nil
	return true
}

// Status returns the submission lifecycle state.
func (e *Engine) Status() SubmissionStatus { return e.status }

// SubmitError returns the banner message from the last failed submission.
func (e *Engine) SubmitError() string { return e.submitErr }

// BeginSubmit flips the in-flight guard. It refuses re-entry while a
// submission is outstanding, giving at-most-one in-flight submission per
// wizard instance.
func (e *Engine) BeginSubmit() bool {
	if e.status == SubmissionInFlight || e.AtTerminal() {
		return false
	}
	e.status = SubmissionInFlight
	e.submitErr = ""
	e.errors = nil
	return true
}

// FinishSubmit records the submission outcome. Success transitions to the
// terminal confirmation state; failure stays on the Review step with a
// single user-facing message and leaves the wizard retryable.
func (e *Engine) FinishSubmit(err error) {
	if e.status != SubmissionInFlight {
		return
	}
	if err != nil {
		e.status = SubmissionFailed
		e.submitErr = "There was an error submitting your application. Please try again."
		return
	}
	e.status = SubmissionSucceeded
	e.current = TerminalIndex
}
