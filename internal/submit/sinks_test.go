package submit

import (
	"context"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loandesk/internal/config"
	"loandesk/internal/logging"
)

func testRecord() Record {
	personal, property, loan := payloads()
	return NewRecord(personal, property, loan, time.UnixMilli(1756600123456))
}

func TestNotionDryRunSimulatesSuccess(t *testing.T) {
	c := NewNotionClient(config.NotionConfig{}, time.Second, true, logging.Nop())
	id, err := c.Submit(context.Background(), testRecord())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "notion-page-"))
}

func TestNotionMissingCredentials(t *testing.T) {
	c := NewNotionClient(config.NotionConfig{BaseURL: "https://api.notion.com/v1"}, time.Second, false, logging.Nop())
	_, err := c.Submit(context.Background(), testRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestNotionPageMapping(t *testing.T) {
	c := NewNotionClient(config.NotionConfig{DatabaseID: "db-1"}, time.Second, false, logging.Nop())
	page := c.pageFor(testRecord())

	assert.Equal(t, "db-1", page.Parent.DatabaseID)
	assert.Equal(t, "Jordan Reyes", page.Properties["Name"].Title[0].Text.Content)
	assert.Equal(t, "jordan@example.com", page.Properties["Email"].Email)
	require.NotNil(t, page.Properties["Loan Amount"].Number)
	assert.Equal(t, 300000.0, *page.Properties["Loan Amount"].Number)
	require.NotNil(t, page.Properties["Property Type"].Select)
	assert.Equal(t, "Single Family Home", page.Properties["Property Type"].Select.Name)
	_, hasNotes := page.Properties["Additional Notes"]
	assert.False(t, hasNotes, "empty additional info produces no property")

	// The body must survive encoding.
	_, err := json.Marshal(page)
	require.NoError(t, err)
}

func TestSendGridDryRunReportsBothSent(t *testing.T) {
	cfg := config.SendGridConfig{
		FromEmail:     "loans@example.com",
		OfficerEmails: []string{"one@lender.test", "two@lender.test"},
	}
	c := NewSendGridClient(cfg, time.Second, true, logging.Nop())

	outcome := c.Notify(context.Background(),
		ApplicantMessage{ApplicantEmail: "jordan@example.com", ApplicationID: "LN-123456"},
		OfficerMessage{ApplicationID: "LN-123456"},
	)
	assert.True(t, outcome.Ok())
}

func TestSendGridMissingKeyReportsFalseNotError(t *testing.T) {
	cfg := config.SendGridConfig{
		FromEmail:     "loans@example.com",
		OfficerEmails: []string{"one@lender.test"},
		BaseURL:       "https://api.sendgrid.com/v3",
	}
	c := NewSendGridClient(cfg, time.Second, false, logging.Nop())

	outcome := c.Notify(context.Background(),
		ApplicantMessage{ApplicantEmail: "jordan@example.com"},
		OfficerMessage{},
	)
	assert.False(t, outcome.ApplicantSent)
	assert.False(t, outcome.OfficerSent)
}

func TestSendGridNoOfficerRecipients(t *testing.T) {
	cfg := config.SendGridConfig{FromEmail: "loans@example.com"}
	c := NewSendGridClient(cfg, time.Second, true, logging.Nop())

	outcome := c.Notify(context.Background(),
		ApplicantMessage{ApplicantEmail: "jordan@example.com"},
		OfficerMessage{},
	)
	assert.True(t, outcome.ApplicantSent)
	assert.False(t, outcome.OfficerSent, "empty officer list cannot be delivered")
}

func TestApplicantMailPlainTextBody(t *testing.T) {
	cfg := config.SendGridConfig{FromEmail: "loans@example.com"}
	c := NewSendGridClient(cfg, time.Second, true, logging.Nop())

	mail := c.applicantMail(ApplicantMessage{
		ApplicantName:   "Jordan Reyes",
		ApplicantEmail:  "jordan@example.com",
		ApplicationID:   "LN-123456",
		ApplicationDate: "January 2, 2026",
		LoanAmount:      "$300,000.00",
		PropertyAddress: "456 Oak Avenue, Dallas, TX 75201",
	})
	assert.Empty(t, mail.TemplateID)
	require.Len(t, mail.Content, 1)
	assert.Contains(t, mail.Content[0].Value, "Dear Jordan Reyes")
	assert.Contains(t, mail.Content[0].Value, "Application ID: LN-123456")
	assert.Contains(t, mail.Content[0].Value, "$300,000.00")
}

func TestApplicantMailTemplateMode(t *testing.T) {
	cfg := config.SendGridConfig{FromEmail: "loans@example.com", ApplicantTemplateID: "d-abc"}
	c := NewSendGridClient(cfg, time.Second, true, logging.Nop())

	mail := c.applicantMail(ApplicantMessage{ApplicantName: "Jordan Reyes", ApplicantEmail: "jordan@example.com", ApplicationID: "LN-123456"})
	assert.Equal(t, "d-abc", mail.TemplateID)
	assert.Empty(t, mail.Content, "template mode carries no inline body")
	require.Len(t, mail.Personalizations, 1)
	assert.Equal(t, "LN-123456", mail.Personalizations[0].TemplateData["application_id"])
}

func TestOfficerMailFansOutToAllRecipients(t *testing.T) {
	cfg := config.SendGridConfig{
		FromEmail:     "loans@example.com",
		OfficerEmails: []string{"one@lender.test", "two@lender.test", "three@lender.test"},
	}
	c := NewSendGridClient(cfg, time.Second, true, logging.Nop())

	mail := c.officerMail(OfficerMessage{ApplicationID: "LN-123456"})
	require.Len(t, mail.Personalizations, 1)
	assert.Len(t, mail.Personalizations[0].To, 3)
	assert.Equal(t, "New Loan Application: LN-123456", mail.Subject)
}
