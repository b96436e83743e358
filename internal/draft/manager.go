package draft

import (
	"errors"
	"time"

	json "github.com/goccy/go-json"

	"loandesk/internal/logging"
	"loandesk/internal/schema"
)

// ProgressKey is the single well-known key the wizard snapshot lives under.
const ProgressKey = "loan_application_progress"

// FreshnessWindow is how long a saved draft stays valid. Older drafts are
// treated as absent rather than silently resurfacing stale data.
const FreshnessWindow = 24 * time.Hour

// Snapshot is the persisted form of the three step payloads.
type Snapshot struct {
	PersonalInfo     schema.Payload `json:"personalInfo"`
	PropertyDetails  schema.Payload `json:"propertyDetails"`
	LoanRequirements schema.Payload `json:"loanRequirements"`
	LastUpdated      time.Time      `json:"lastUpdated"`
}

var (
	// ErrNoDraft means nothing usable was found: absent, malformed, or
	// outside the freshness window. Callers treat all three the same way.
	ErrNoDraft = errors.New("no draft available")
)

// Manager mediates between the wizard and the Store. Saves are best-effort:
// a storage failure is logged and swallowed, never surfaced to the user and
// never allowed to block navigation.
type Manager struct {
	store Store
	log   *logging.Logger
	now   func() time.Time
}

// NewManager wraps a Store. The clock is injectable for freshness tests.
func NewManager(store Store, log *logging.Logger) *Manager {
	return &Manager{store: store, log: log, now: time.Now}
}

// WithClock overrides the time source. Test hook.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Save persists the current step payloads with a fresh timestamp.
func (m *Manager) Save(personal, property, loan schema.Payload) {
	snap := Snapshot{
		PersonalInfo:     personal,
		PropertyDetails:  property,
		LoanRequirements: loan,
		LastUpdated:      m.now().UTC(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		m.log.Error("draft marshal failed: %v", err)
		return
	}
	if err := m.store.Set(ProgressKey, string(data)); err != nil {
		m.log.Error("draft save failed: %v", err)
		return
	}
	m.log.Debug("draft saved (%d bytes)", len(data))
}

// Load returns the saved snapshot if one exists and is inside the freshness
// window. Everything else — absent key, corrupt JSON, stale timestamp,
// storage failure — collapses to ErrNoDraft; storage failures are logged.
func (m *Manager) Load() (*Snapshot, error) {
	raw, ok, err := m.store.Get(ProgressKey)
	if err != nil {
		m.log.Error("draft load failed: %v", err)
		return nil, ErrNoDraft
	}
	if !ok {
		return nil, ErrNoDraft
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		m.log.Warn("discarding corrupt draft: %v", err)
		return nil, ErrNoDraft
	}

	age := m.now().Sub(snap.LastUpdated)
	if age < 0 || age >= FreshnessWindow {
		m.log.Info("discarding stale draft (age %v)", age)
		return nil, ErrNoDraft
	}
	return &snap, nil
}

// Clear deletes the snapshot. Called exactly once, when the terminal
// confirmation state is entered: a completed application never resurrects
// its data into a new session.
func (m *Manager) Clear() {
	if err := m.store.Remove(ProgressKey); err != nil {
		m.log.Error("draft clear failed: %v", err)
		return
	}
	m.log.Debug("draft cleared")
}
