package submit

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"

	"loandesk/internal/config"
	"loandesk/internal/logging"
)

// SendGridClient is the notifier sink. The applicant confirmation and the
// officer notification are independent sends: they run in parallel, and a
// failure in either is reported as a boolean, never as an error — by the
// time these go out the application is already accepted.
type SendGridClient struct {
	cfg     config.SendGridConfig
	timeout time.Duration
	dryRun  bool
	log     *logging.Logger
	client  *fasthttp.Client
}

// NewSendGridClient builds the client from injected configuration.
func NewSendGridClient(cfg config.SendGridConfig, timeout time.Duration, dryRun bool, log *logging.Logger) *SendGridClient {
	return &SendGridClient{
		cfg:     cfg,
		timeout: timeout,
		dryRun:  dryRun,
		log:     log,
		client:  &fasthttp.Client{},
	}
}

// SendGrid v3 mail/send request body.
type sgMail struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject,omitempty"`
	Content          []sgContent         `json:"content,omitempty"`
	TemplateID       string              `json:"template_id,omitempty"`
}

type sgPersonalization struct {
	To           []sgAddress            `json:"to"`
	TemplateData map[string]interface{} `json:"dynamic_template_data,omitempty"`
}

type sgAddress struct {
	Email string `json:"email"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Notify sends both messages and joins before returning. Partial success is
// normal: the outcome booleans are the whole story, details go to the log.
func (c *SendGridClient) Notify(ctx context.Context, applicant ApplicantMessage, officer OfficerMessage) NotifyOutcome {
	var outcome NotifyOutcome

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		outcome.ApplicantSent = c.send(ctx, c.applicantMail(applicant))
		return nil
	})
	g.Go(func() error {
		outcome.OfficerSent = c.send(ctx, c.officerMail(officer))
		return nil
	})
	_ = g.Wait() // send errors are folded into the booleans

	if !outcome.Ok() {
		c.log.Warn("notification degraded for %s: applicant=%v officer=%v",
			applicant.ApplicationID, outcome.ApplicantSent, outcome.OfficerSent)
	}
	return outcome
}

func (c *SendGridClient) applicantMail(m ApplicantMessage) sgMail {
	p := sgPersonalization{To: []sgAddress{{Email: m.ApplicantEmail}}}
	mail := sgMail{
		From:    sgAddress{Email: c.cfg.FromEmail},
		Subject: "Your Loan Application Has Been Received",
	}
	if c.cfg.ApplicantTemplateID != "" {
		mail.TemplateID = c.cfg.ApplicantTemplateID
		p.TemplateData = map[string]interface{}{
			"applicant_name":   m.ApplicantName,
			"application_id":   m.ApplicationID,
			"application_date": m.ApplicationDate,
			"loan_amount":      m.LoanAmount,
			"property_address": m.PropertyAddress,
		}
	} else {
		mail.Content = []sgContent{{
			Type: "text/plain",
			Value: fmt.Sprintf(
				"Thank you for your loan application\n\nDear %s,\n\nThank you for submitting your loan application. We have received your request and our team will review it shortly.\n\nApplication Details:\nApplication ID: %s\nDate: %s\nLoan Amount: %s\nProperty: %s\n\nWe will contact you soon with updates on your application.\n\nBest regards,\nThe Loan Team",
				m.ApplicantName, m.ApplicationID, m.ApplicationDate, m.LoanAmount, m.PropertyAddress),
		}}
	}
	mail.Personalizations = []sgPersonalization{p}
	return mail
}

func (c *SendGridClient) officerMail(m OfficerMessage) sgMail {
	to := make([]sgAddress, 0, len(c.cfg.OfficerEmails))
	for _, addr := range c.cfg.OfficerEmails {
		to = append(to, sgAddress{Email: addr})
	}
	p := sgPersonalization{To: to}
	mail := sgMail{
		From:    sgAddress{Email: c.cfg.FromEmail},
		Subject: fmt.Sprintf("New Loan Application: %s", m.ApplicationID),
	}
	if c.cfg.OfficerTemplateID != "" {
		mail.TemplateID = c.cfg.OfficerTemplateID
		p.TemplateData = map[string]interface{}{
			"applicant_name":   m.ApplicantName,
			"applicant_email":  m.ApplicantEmail,
			"applicant_phone":  m.ApplicantPhone,
			"application_id":   m.ApplicationID,
			"application_date": m.ApplicationDate,
			"loan_amount":      m.LoanAmount,
			"property_address": m.PropertyAddress,
			"property_type":    m.PropertyType,
			"loan_purpose":     m.LoanPurpose,
		}
	} else {
		mail.Content = []sgContent{{
			Type: "text/plain",
			Value: fmt.Sprintf(
				"New loan application received\n\nApplicant: %s\nEmail: %s\nPhone: %s\n\nApplication ID: %s\nDate: %s\nLoan Amount: %s\nProperty: %s\nProperty Type: %s\nLoan Purpose: %s\n",
				m.ApplicantName, m.ApplicantEmail, m.ApplicantPhone, m.ApplicationID,
				m.ApplicationDate, m.LoanAmount, m.PropertyAddress, m.PropertyType, m.LoanPurpose),
		}}
	}
	mail.Personalizations = []sgPersonalization{p}
	return mail
}

// send posts one mail and reports delivery as a boolean. No recipients
// configured counts as failure for the officer message and is logged.
func (c *SendGridClient) send(ctx context.Context, mail sgMail) bool {
	if len(mail.Personalizations) == 0 || len(mail.Personalizations[0].To) == 0 {
		c.log.Warn("no recipients for %q", mail.Subject)
		return false
	}
	if c.dryRun {
		c.log.Info("dry run: simulated send %q to %d recipient(s)", mail.Subject, len(mail.Personalizations[0].To))
		return true
	}
	if c.cfg.APIKey == "" {
		c.log.Warn("sendgrid api key missing; %q not sent", mail.Subject)
		return false
	}
	if ctx.Err() != nil {
		return false
	}

	body, err := json.Marshal(mail)
	if err != nil {
		c.log.Error("failed to encode mail %q: %v", mail.Subject, err)
		return false
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.cfg.BaseURL + "/mail/send")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.SetBody(body)

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		c.log.Error("send %q failed: %v", mail.Subject, err)
		return false
	}
	if resp.StatusCode() >= 300 {
		c.log.Error("send %q rejected: status %d", mail.Subject, resp.StatusCode())
		return false
	}
	return true
}
