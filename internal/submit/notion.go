package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"loandesk/internal/config"
	"loandesk/internal/logging"
	"loandesk/internal/schema"
)

const notionVersion = "2022-06-28"

// NotionClient submits completed applications as pages in a Notion
// database. It is the primary sink: notification only happens after this
// call succeeds.
type NotionClient struct {
	cfg     config.NotionConfig
	timeout time.Duration
	dryRun  bool
	log     *logging.Logger
	client  *fasthttp.Client
}

// NewNotionClient builds the client from injected configuration; nothing is
// read from the environment here.
func NewNotionClient(cfg config.NotionConfig, timeout time.Duration, dryRun bool, log *logging.Logger) *NotionClient {
	return &NotionClient{
		cfg:     cfg,
		timeout: timeout,
		dryRun:  dryRun,
		log:     log,
		client:  &fasthttp.Client{},
	}
}

// notionPage is the pages.create request body, reduced to the property
// types the application database uses.
type notionPage struct {
	Parent     notionParent              `json:"parent"`
	Properties map[string]notionProperty `json:"properties"`
}

type notionParent struct {
	DatabaseID string `json:"database_id"`
}

type notionProperty struct {
	Title  []notionText `json:"title,omitempty"`
	Rich   []notionText `json:"rich_text,omitempty"`
	Email  string       `json:"email,omitempty"`
	Phone  string       `json:"phone_number,omitempty"`
	Number *float64     `json:"number,omitempty"`
	Select *notionName  `json:"select,omitempty"`
}

type notionText struct {
	Text notionContent `json:"text"`
}

type notionContent struct {
	Content string `json:"content"`
}

type notionName struct {
	Name string `json:"name"`
}

type notionCreateResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Submit creates the database page and returns its id. In dry-run mode (or
// when credentials are absent and dry-run was requested) a simulated id is
// returned, mirroring the keyless development path of the hosted service.
func (c *NotionClient) Submit(ctx context.Context, rec Record) (string, error) {
	if c.dryRun {
		id := fmt.Sprintf("notion-page-%d", rec.SubmissionDate.UnixMilli())
		c.log.Info("dry run: simulated primary submit %s for %s", id, rec.ApplicationID)
		return id, nil
	}
	if c.cfg.APIKey == "" || c.cfg.DatabaseID == "" {
		return "", errors.New("notion api key or database id is missing")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := json.Marshal(c.pageFor(rec))
	if err != nil {
		return "", fmt.Errorf("failed to encode notion page: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.cfg.BaseURL + "/pages")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.SetBody(body)

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		c.log.Error("notion submit failed for %s: %v", rec.ApplicationID, err)
		return "", fmt.Errorf("notion request failed: %w", err)
	}

	var parsed notionCreateResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		parsed = notionCreateResponse{}
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		c.log.Error("notion submit rejected for %s: status %d %s", rec.ApplicationID, resp.StatusCode(), parsed.Message)
		if parsed.Message != "" {
			return "", fmt.Errorf("notion rejected submission: %s", parsed.Message)
		}
		return "", fmt.Errorf("notion rejected submission: status %d", resp.StatusCode())
	}

	c.log.Info("notion page %s created for %s", parsed.ID, rec.ApplicationID)
	return parsed.ID, nil
}

// pageFor maps the record onto the database schema. Enum codes are expanded
// to their labels so the database reads the way the review page does.
func (c *NotionClient) pageFor(rec Record) notionPage {
	props := map[string]notionProperty{
		"Name":             {Title: []notionText{{notionContent{rec.ApplicantName()}}}},
		"Application ID":   {Rich: []notionText{{notionContent{rec.ApplicationID}}}},
		"Email":            {Email: rec.Email},
		"Phone":            {Phone: rec.Phone},
		"Address":          {Rich: []notionText{{notionContent{fmt.Sprintf("%s, %s, %s %s", rec.Address, rec.City, rec.State, rec.ZipCode)}}}},
		"Property Address": {Rich: []notionText{{notionContent{rec.FullPropertyAddress()}}}},
		"Property Type":    {Select: &notionName{schema.OptionLabel(schema.PropertyTypeOptions, rec.PropertyType)}},
		"Property Value":   {Number: f64(rec.PropertyValue)},
		"Purchase Price":   {Number: f64(rec.PurchasePrice)},
		"Loan Amount":      {Number: f64(rec.LoanAmount)},
		"Loan Purpose":     {Select: &notionName{schema.OptionLabel(schema.LoanPurposeOptions, rec.LoanPurpose)}},
		"Loan Term":        {Number: f64(rec.LoanTermMonths)},
		"Exit Strategy":    {Select: &notionName{schema.OptionLabel(schema.ExitStrategyOptions, rec.ExitStrategy)}},
		"Timeframe":        {Select: &notionName{schema.OptionLabel(schema.TimeframeOptions, rec.Timeframe)}},
		"Submitted":        {Rich: []notionText{{notionContent{rec.SubmissionDate.UTC().Format(time.RFC3339)}}}},
	}
	if rec.AdditionalInfo != "" {
		props["Additional Notes"] = notionProperty{Rich: []notionText{{notionContent{rec.AdditionalInfo}}}}
	}
	return notionPage{
		Parent:     notionParent{DatabaseID: c.cfg.DatabaseID},
		Properties: props,
	}
}

func f64(v float64) *float64 { return &v }
