package submit

import (
	"context"
	"fmt"
	"time"

	"loandesk/internal/logging"
	"loandesk/internal/schema"
)

// Callback is the optional host hook invoked with the full record after the
// primary sink accepts it. It runs inside the same containment boundary as
// the sink calls: a panic or error in the hook is logged, never propagated.
type Callback func(rec Record) error

// Result reports a successful dispatch. Degraded means the primary sink
// accepted the application but one or both notifications did not go out;
// from the applicant's perspective the submission still succeeded.
type Result struct {
	Record   Record
	SinkID   string
	Notify   NotifyOutcome
	Degraded bool
}

// Dispatcher drives the final-submit sequence: assemble the record, submit
// to the system of record, then fan out notifications only if that
// succeeded. Collaborators are injected at construction; nothing is loaded
// or resolved at submit time.
type Dispatcher struct {
	primary  Primary
	notifier Notifier
	callback Callback
	log      *logging.Logger
	now      func() time.Time
}

// NewDispatcher wires the two sinks and the optional host callback.
func NewDispatcher(primary Primary, notifier Notifier, callback Callback, log *logging.Logger) *Dispatcher {
	return &Dispatcher{
		primary:  primary,
		notifier: notifier,
		callback: callback,
		log:      log,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Dispatch performs the full submission. A primary-sink failure returns an
// error and nothing else happens: no notifications, no callback, and the
// caller keeps its draft so the user can retry. Notification failure after
// primary success is degraded success, not failure.
func (d *Dispatcher) Dispatch(ctx context.Context, personal, property, loan schema.Payload) (*Result, error) {
	rec := NewRecord(personal, property, loan, d.now())
	d.log.Info("dispatching application %s", rec.ApplicationID)

	sinkID, err := d.primary.Submit(ctx, rec)
	if err != nil {
		d.log.Error("primary sink rejected %s: %v", rec.ApplicationID, err)
		return nil, fmt.Errorf("primary submission failed: %w", err)
	}
	d.log.Info("primary sink accepted %s as %s", rec.ApplicationID, sinkID)

	outcome := d.notifier.Notify(ctx,
		ApplicantMessage{
			ApplicantName:   rec.ApplicantName(),
			ApplicantEmail:  rec.Email,
			ApplicationID:   rec.ApplicationID,
			ApplicationDate: rec.FormattedDate(),
			LoanAmount:      rec.FormattedLoanAmount(),
			PropertyAddress: rec.FullPropertyAddress(),
		},
		OfficerMessage{
			ApplicantName:   rec.ApplicantName(),
			ApplicantEmail:  rec.Email,
			ApplicantPhone:  rec.Phone,
			ApplicationID:   rec.ApplicationID,
			ApplicationDate: rec.FormattedDate(),
			LoanAmount:      rec.FormattedLoanAmount(),
			PropertyAddress: rec.FullPropertyAddress(),
			PropertyType:    schema.OptionLabel(schema.PropertyTypeOptions, rec.PropertyType),
			LoanPurpose:     schema.OptionLabel(schema.LoanPurposeOptions, rec.LoanPurpose),
		},
	)

	d.invokeCallback(rec)

	return &Result{
		Record:   rec,
		SinkID:   sinkID,
		Notify:   outcome,
		Degraded: !outcome.Ok(),
	}, nil
}

// invokeCallback runs the host hook with the same containment the sinks
// get: its failure modes stay its own.
func (d *Dispatcher) invokeCallback(rec Record) {
	if d.callback == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("host callback panicked for %s: %v", rec.ApplicationID, r)
		}
	}()
	if err := d.callback(rec); err != nil {
		d.log.Warn("host callback failed for %s: %v", rec.ApplicationID, err)
	}
}
