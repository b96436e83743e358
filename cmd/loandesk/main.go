package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"loandesk/cmd/loandesk/ui"
	"loandesk/internal/config"
	"loandesk/internal/draft"
	"loandesk/internal/logging"
	"loandesk/internal/schema"
	"loandesk/internal/submit"
	"loandesk/internal/wizard"
)

const version = "1.0.0"

var (
	// Global flags
	verbose  bool
	cfgPath  string
	stateDir string
	dryRun   bool

	// Logger for non-interactive subcommands. The wizard itself owns the
	// terminal and logs to category files instead.
	logger *zap.Logger
)

// rootCmd launches the interactive application wizard.
var rootCmd = &cobra.Command{
	Use:   "loandesk",
	Short: "loandesk - terminal intake wizard for hard money loan applications",
	Long: `loandesk walks a borrower through a multi-step loan application:
personal information, property details, loan requirements, then a review
page. Progress is saved locally after every completed step and restored on
restart for 24 hours. Submitting delivers the application to the configured
Notion database and sends confirmation emails through SendGrid.

Run without arguments to start the wizard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for the wizard (it has its own UI)
		if cmd.Use == "loandesk" && cmd.CalledAs() == "loandesk" {
			return nil
		}

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard()
	},
}

// draftCmd groups draft inspection commands.
var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Inspect or clear the locally saved application draft",
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved draft as JSON",
	RunE:  draftShow,
}

var draftClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved draft",
	RunE:  draftClear,
}

// configInitCmd writes a starter config file.
var configInitCmd = &cobra.Command{
	Use:   "config-init",
	Short: "Write a default configuration file",
	Long: `Writes the default configuration to the given path (or
<state-dir>/config.yaml). Sink credentials are read from the environment at
startup: NOTION_API_KEY, NOTION_DATABASE_ID, SENDGRID_API_KEY.`,
	RunE: configInit,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the loandesk version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("loandesk " + version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file path (default: <state-dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "State directory for drafts and logs (default: ~/.loandesk)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Submit nowhere; log what would be sent")

	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftClearCmd)

	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration with flag overrides applied.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return nil, err
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if dryRun {
		cfg.DryRun = true
	}
	if verbose {
		cfg.Debug = true
	}
	return cfg, nil
}

func resolveConfigPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	base := stateDir
	if base == "" {
		base = config.Default().StateDir
	}
	return filepath.Join(base, "config.yaml")
}

// runWizard wires the full stack and hands the terminal to the TUI.
func runWizard() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bootLog := logging.Open(cfg.StateDir, logging.CategoryBoot, cfg.Debug)
	defer bootLog.Close()
	bootLog.Info("loandesk %s starting, state dir %s, dry-run %v", version, cfg.StateDir, cfg.DryRun)

	store, err := draft.OpenSQLite(cfg.DraftDBPath())
	if err != nil {
		return fmt.Errorf("failed to open draft store: %w", err)
	}
	defer store.Close()

	draftLog := logging.Open(cfg.StateDir, logging.CategoryDraft, cfg.Debug)
	defer draftLog.Close()
	drafts := draft.NewManager(store, draftLog)

	submitLog := logging.Open(cfg.StateDir, logging.CategorySubmit, cfg.Debug)
	defer submitLog.Close()
	notion := submit.NewNotionClient(cfg.Notion, cfg.SubmitTimeout(), cfg.DryRun, submitLog)
	sendgrid := submit.NewSendGridClient(cfg.SendGrid, cfg.SubmitTimeout(), cfg.DryRun, submitLog)
	dispatcher := submit.NewDispatcher(notion, sendgrid, nil, submitLog)

	uiLog := logging.Open(cfg.StateDir, logging.CategoryUI, cfg.Debug)
	defer uiLog.Close()

	model := ui.NewModel(
		wizard.New(schema.Validate),
		drafts,
		dispatcher,
		ui.NewStyles(ui.DetectTheme()),
		cfg.Widget.Title,
		cfg.Widget.Description,
		uiLog,
	)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func openManager() (*draft.Manager, *draft.SQLiteStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := draft.OpenSQLite(cfg.DraftDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open draft store: %w", err)
	}
	return draft.NewManager(store, logging.Nop()), store, nil
}

// draftShow prints the saved draft, if fresh, as indented JSON.
func draftShow(cmd *cobra.Command, args []string) error {
	mgr, store, err := openManager()
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := mgr.Load()
	if err != nil {
		logger.Info("No usable draft found", zap.Error(err))
		fmt.Println("no draft")
		return nil
	}

	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// draftClear deletes the saved draft.
func draftClear(cmd *cobra.Command, args []string) error {
	mgr, store, err := openManager()
	if err != nil {
		return err
	}
	defer store.Close()

	mgr.Clear()
	logger.Info("Draft cleared")
	fmt.Println("draft cleared")
	return nil
}

// configInit writes the default config to the resolved path.
func configInit(cmd *cobra.Command, args []string) error {
	path := resolveConfigPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}

	cfg := config.Default()
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	logger.Info("Wrote default config", zap.String("path", path))
	fmt.Println("wrote " + path)
	return nil
}
