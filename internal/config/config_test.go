package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Hard Money Mortgage Loan Application", cfg.Widget.Title)
	assert.Equal(t, "https://api.notion.com/v1", cfg.Notion.BaseURL)
	assert.NotEmpty(t, cfg.SendGrid.OfficerEmails)
	assert.Equal(t, 30*time.Second, cfg.SubmitTimeout())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Widget.Title, cfg.Widget.Title)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
state_dir: /tmp/loandesk-test
dry_run: true
notion:
  database_id: db-123
sendgrid:
  from_email: desk@lender.test
  officer_emails:
    - one@lender.test
    - two@lender.test
submit:
  timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/loandesk-test", cfg.StateDir)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "db-123", cfg.Notion.DatabaseID)
	assert.Equal(t, []string{"one@lender.test", "two@lender.test"}, cfg.SendGrid.OfficerEmails)
	assert.Equal(t, 5*time.Second, cfg.SubmitTimeout())
	assert.Equal(t, filepath.Join("/tmp/loandesk-test", "drafts.db"), cfg.DraftDBPath())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{notyaml"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("notion:\n  api_key: from-file\n"), 0o644))

	t.Setenv("NOTION_API_KEY", "from-env")
	t.Setenv("NOTION_DATABASE_ID", "env-db")
	t.Setenv("SENDGRID_API_KEY", "sg-env")
	t.Setenv("LOANDESK_STATE_DIR", "/tmp/env-state")
	t.Setenv("LOANDESK_DRY_RUN", "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Notion.APIKey)
	assert.Equal(t, "env-db", cfg.Notion.DatabaseID)
	assert.Equal(t, "sg-env", cfg.SendGrid.APIKey)
	assert.Equal(t, "/tmp/env-state", cfg.StateDir)
	assert.True(t, cfg.DryRun)
}

func TestSubmitTimeoutFallsBackOnGarbage(t *testing.T) {
	cfg := Default()
	cfg.Submit.Timeout = "soon"
	assert.Equal(t, 30*time.Second, cfg.SubmitTimeout())
	cfg.Submit.Timeout = "-5s"
	assert.Equal(t, 30*time.Second, cfg.SubmitTimeout())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Notion.DatabaseID = "roundtrip"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "roundtrip", loaded.Notion.DatabaseID)
}
