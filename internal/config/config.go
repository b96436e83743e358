// Package config holds all loandesk configuration. Config is resolved once
// at startup (file, then environment overrides) and passed explicitly into
// the components that need it; nothing reads the environment at submit time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	// StateDir holds the draft database and diagnostic logs.
	StateDir string `yaml:"state_dir"`

	// Debug enables debug-level diagnostic logging.
	Debug bool `yaml:"debug"`

	// DryRun simulates both sinks instead of calling them. Mirrors the
	// keyless development mode of the hosted services.
	DryRun bool `yaml:"dry_run"`

	Widget   WidgetConfig   `yaml:"widget"`
	Notion   NotionConfig   `yaml:"notion"`
	SendGrid SendGridConfig `yaml:"sendgrid"`
	Submit   SubmitConfig   `yaml:"submit"`
}

// WidgetConfig controls the wizard's header copy.
type WidgetConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// NotionConfig configures the primary data sink.
type NotionConfig struct {
	APIKey     string `yaml:"api_key"`
	DatabaseID string `yaml:"database_id"`
	BaseURL    string `yaml:"base_url"`
}

// SendGridConfig configures the notifier sink.
type SendGridConfig struct {
	APIKey              string   `yaml:"api_key"`
	FromEmail           string   `yaml:"from_email"`
	OfficerEmails       []string `yaml:"officer_emails"`
	ApplicantTemplateID string   `yaml:"applicant_template_id"`
	OfficerTemplateID   string   `yaml:"officer_template_id"`
	BaseURL             string   `yaml:"base_url"`
}

// SubmitConfig tunes the submission dispatcher.
type SubmitConfig struct {
	// Timeout is the per-sink request deadline, e.g. "30s".
	Timeout string `yaml:"timeout"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		StateDir: defaultStateDir(),
		Widget: WidgetConfig{
			Title:       "Hard Money Mortgage Loan Application",
			Description: "Complete the form below to apply for a hard money mortgage loan. Our team will review your application and contact you shortly.",
		},
		Notion: NotionConfig{
			BaseURL: "https://api.notion.com/v1",
		},
		SendGrid: SendGridConfig{
			FromEmail: "loans@example.com",
			OfficerEmails: []string{
				"officers@example.com",
			},
			BaseURL: "https://api.sendgrid.com/v3",
		},
		Submit: SubmitConfig{
			Timeout: "30s",
		},
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".loandesk"
	}
	return filepath.Join(home, ".loandesk")
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file is absent, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides. Service
// credentials keep their conventional names.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("NOTION_API_KEY"); key != "" {
		c.Notion.APIKey = key
	}
	if id := os.Getenv("NOTION_DATABASE_ID"); id != "" {
		c.Notion.DatabaseID = id
	}
	if key := os.Getenv("SENDGRID_API_KEY"); key != "" {
		c.SendGrid.APIKey = key
	}
	if from := os.Getenv("SENDGRID_FROM_EMAIL"); from != "" {
		c.SendGrid.FromEmail = from
	}
	if id := os.Getenv("SENDGRID_APPLICANT_TEMPLATE_ID"); id != "" {
		c.SendGrid.ApplicantTemplateID = id
	}
	if id := os.Getenv("SENDGRID_OFFICER_TEMPLATE_ID"); id != "" {
		c.SendGrid.OfficerTemplateID = id
	}
	if dir := os.Getenv("LOANDESK_STATE_DIR"); dir != "" {
		c.StateDir = dir
	}
	if os.Getenv("LOANDESK_DRY_RUN") == "1" {
		c.DryRun = true
	}
}

// SubmitTimeout parses the per-sink request deadline, defaulting to 30s on
// a missing or malformed value.
func (c *Config) SubmitTimeout() time.Duration {
	d, err := time.ParseDuration(c.Submit.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// DraftDBPath is the location of the draft database under the state dir.
func (c *Config) DraftDBPath() string {
	return filepath.Join(c.StateDir, "drafts.db")
}
