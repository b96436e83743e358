// Package submit assembles the final application record and dispatches it
// to the external sinks: the system of record first, then the notifier.
package submit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"loandesk/internal/schema"
)

// Record is the merged, submit-ready application. Numeric fields are
// coerced from the free-text currency strings here and nowhere else; the
// step payloads themselves stay raw until this point.
type Record struct {
	ApplicationID  string
	SubmissionDate time.Time

	// Personal
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Address      string
	City         string
	State        string
	ZipCode      string
	CreditScore  string // enum code
	AnnualIncome string // enum code

	// Property
	PropertyAddress     string
	PropertyCity        string
	PropertyState       string
	PropertyZip         string
	PropertyType        string // enum code
	PropertyValue       float64
	PurchasePrice       float64
	YearBuilt           string
	SquareFootage       string
	PropertyDescription string

	// Loan
	LoanAmount     float64
	LoanPurpose    string // enum code
	LoanTermMonths float64
	ExitStrategy   string // enum code
	Timeframe      string // enum code
	AdditionalInfo string
}

// NewRecord merges the three validated step payloads, stamps the submission
// time, and generates the application id: "LN-" plus the last six digits of
// the millisecond timestamp.
func NewRecord(personal, property, loan schema.Payload, now time.Time) Record {
	return Record{
		ApplicationID:  applicationID(now),
		SubmissionDate: now,

		FirstName:    personal["firstName"],
		LastName:     personal["lastName"],
		Email:        personal["email"],
		Phone:        personal["phone"],
		Address:      personal["address"],
		City:         personal["city"],
		State:        personal["state"],
		ZipCode:      personal["zipCode"],
		CreditScore:  personal["creditScore"],
		AnnualIncome: personal["annualIncome"],

		PropertyAddress:     property["propertyAddress"],
		PropertyCity:        property["propertyCity"],
		PropertyState:       property["propertyState"],
		PropertyZip:         property["propertyZip"],
		PropertyType:        property["propertyType"],
		PropertyValue:       ParseCurrency(property["propertyValue"]),
		PurchasePrice:       ParseCurrency(property["purchasePrice"]),
		YearBuilt:           property["yearBuilt"],
		SquareFootage:       property["squareFootage"],
		PropertyDescription: property["propertyDescription"],

		LoanAmount:     ParseCurrency(loan["loanAmount"]),
		LoanPurpose:    loan["loanPurpose"],
		LoanTermMonths: ParseCurrency(loan["loanTerm"]),
		ExitStrategy:   loan["exitStrategy"],
		Timeframe:      loan["timeframe"],
		AdditionalInfo: loan["additionalInfo"],
	}
}

func applicationID(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "LN-" + ms
}

// ParseCurrency strips everything outside [0-9.-] and parses what remains.
// Unparseable input coerces to zero; validation upstream guarantees at
// least one digit for the fields that matter.
func ParseCurrency(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// ApplicantName is the display name used on the confirmation page and in
// both notification messages.
func (r Record) ApplicantName() string {
	return r.FirstName + " " + r.LastName
}

// FullPropertyAddress renders the single-line property address used in
// notifications.
func (r Record) FullPropertyAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", r.PropertyAddress, r.PropertyCity, r.PropertyState, r.PropertyZip)
}

// FormattedLoanAmount renders the coerced loan amount as US currency,
// e.g. "$300,000.00".
func (r Record) FormattedLoanAmount() string {
	return FormatUSD(r.LoanAmount)
}

// FormattedDate renders the submission date the way the notifier messages
// expect, e.g. "January 2, 2026".
func (r Record) FormattedDate() string {
	return r.SubmissionDate.Format("January 2, 2006")
}

// FormatUSD renders a dollar amount with comma grouping and two decimals.
func FormatUSD(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := "$" + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
