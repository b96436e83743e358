// Package schema defines the declarative field contracts for each wizard
// step and the validator that gates forward navigation. Validation is pure:
// the same payload always yields the same result, and no state is touched.
package schema

import (
	"fmt"
	"strings"
)

// StepID identifies one wizard step. Review carries no payload of its own;
// it is a derived projection of the three data steps.
type StepID int

const (
	StepPersonal StepID = iota
	StepProperty
	StepLoan
	StepReview
)

// DataSteps is the number of steps that own a payload.
const DataSteps = 3

// StepTitles are the display names shown in the progress indicator.
var StepTitles = []string{
	"Personal Information",
	"Property Details",
	"Loan Requirements",
	"Review",
}

func (s StepID) String() string {
	if int(s) >= 0 && int(s) < len(StepTitles) {
		return StepTitles[s]
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// FieldKind selects the validation rule applied beyond length checks.
type FieldKind int

const (
	KindText FieldKind = iota
	KindEmail
	KindNumeric // free-text currency/number; must contain at least one digit
	KindEnum
	KindMultiline
)

// Option is one selectable value for an enum field. Value is the stored
// code, Label the human-readable expansion used on the Review page.
type Option struct {
	Value string
	Label string
}

// Field is the declarative contract for a single form field.
type Field struct {
	Name        string
	Label       string
	Kind        FieldKind
	MinLen      int
	Optional    bool
	Options     []Option
	Placeholder string
}

// Payload holds the raw string values for one step, keyed by field name.
// Values stay free-text until submission time; validation only trims.
type Payload map[string]string

// Clone returns a deep copy so callers can mutate without aliasing.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// FieldError is a single user-correctable validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + " - " + e.Message
}

// Strings renders an error list in declaration order for display.
func Strings(errs []FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.String()
	}
	return out
}

// Validate checks a step payload against its declared fields. On success it
// returns the normalized (trimmed) payload and a nil error list; on failure
// the error list is ordered by field declaration order. Validation never
// inspects other steps' data.
func Validate(step StepID, p Payload) (Payload, []FieldError) {
	fields := Fields(step)
	normalized := make(Payload, len(fields))
	var errs []FieldError

	for _, f := range fields {
		raw := strings.TrimSpace(p[f.Name])
		normalized[f.Name] = raw

		if raw == "" {
			if f.Optional {
				continue
			}
			if f.MinLen > 0 {
				errs = append(errs, FieldError{f.Name, minLenMessage(f.MinLen)})
			} else if f.Kind == KindEmail {
				errs = append(errs, FieldError{f.Name, "Invalid email"})
			}
			// Fields with no minimum accept the empty string, matching the
			// permissive contract of the credit score and income selectors.
			continue
		}

		if f.MinLen > 0 && len(raw) < f.MinLen {
			errs = append(errs, FieldError{f.Name, minLenMessage(f.MinLen)})
			continue
		}

		switch f.Kind {
		case KindEmail:
			if !validEmail(raw) {
				errs = append(errs, FieldError{f.Name, "Invalid email"})
			}
		case KindNumeric:
			if !strings.ContainsAny(raw, "0123456789") {
				errs = append(errs, FieldError{f.Name, "Must contain a number"})
			}
		case KindEnum:
			if !memberOf(f.Options, raw) {
				errs = append(errs, FieldError{f.Name, "Invalid selection"})
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return normalized, nil
}

func minLenMessage(n int) string {
	return fmt.Sprintf("String must contain at least %d character(s)", n)
}

// validEmail is a shallow shape check: one '@' with a dotted domain.
// Deliverability is the notifier's problem.
func validEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return !strings.ContainsAny(s, " \t")
}

func memberOf(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// OptionLabel expands a stored enum code to its display label. Unknown codes
// pass through unchanged so stale drafts never render blank.
func OptionLabel(opts []Option, code string) string {
	for _, o := range opts {
		if o.Value == code {
			return o.Label
		}
	}
	return code
}
