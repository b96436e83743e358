package submit

import "context"

// Primary is the external system of record for a completed application.
// Submit returns the sink's opaque identifier on success.
type Primary interface {
	Submit(ctx context.Context, rec Record) (string, error)
}

// ApplicantMessage is the confirmation sent to the applicant.
type ApplicantMessage struct {
	ApplicantName   string
	ApplicantEmail  string
	ApplicationID   string
	ApplicationDate string
	LoanAmount      string
	PropertyAddress string
}

// OfficerMessage is the notification fanned out to the loan officer list.
type OfficerMessage struct {
	ApplicantName   string
	ApplicantEmail  string
	ApplicantPhone  string
	ApplicationID   string
	ApplicationDate string
	LoanAmount      string
	PropertyAddress string
	PropertyType    string // expanded label
	LoanPurpose     string // expanded label
}

// NotifyOutcome reports per-message delivery. Partial failure is tolerated
// by the dispatcher: the application is already accepted by the time these
// go out.
type NotifyOutcome struct {
	ApplicantSent bool
	OfficerSent   bool
}

// Ok reports full delivery of both messages.
func (o NotifyOutcome) Ok() bool { return o.ApplicantSent && o.OfficerSent }

// Notifier delivers the two submission notifications. Implementations must
// never fail the overall flow for per-recipient problems; they report
// booleans and log the details themselves.
type Notifier interface {
	Notify(ctx context.Context, applicant ApplicantMessage, officer OfficerMessage) NotifyOutcome
}
