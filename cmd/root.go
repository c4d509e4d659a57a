// Package cmd implements the gastos command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/theirongolddev/gastos/internal/api"
	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/cli"
	"github.com/theirongolddev/gastos/internal/config"
	"github.com/theirongolddev/gastos/internal/logging"
	"github.com/theirongolddev/gastos/internal/store"
	"github.com/theirongolddev/gastos/internal/tracker"
	"github.com/theirongolddev/gastos/internal/tui/theme"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagAPIURL  string
	flagState   string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "gastos",
	Short:         "Budget and expense tracker",
	Long:          "Track spending against a budget: log expenses, organise them by category and watch what is left.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "  Error: %s\n", apperr.UserMessage(err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Budget service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagState, "state", "", "Local state database path")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")
}

// session bundles everything a command needs to talk to the backend.
type session struct {
	cfg     config.Config
	store   *store.Store
	client  *api.Client
	tracker *tracker.Tracker
}

// openSession is the shared setup path used by all commands. The TUI passes
// logToFile so log lines never land on the alternate screen.
func openSession(logToFile bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}
	cli.SetCurrency(cfg.General.Currency)
	theme.SetActive(cfg.Appearance.Theme)

	if err := initLogging(cfg, logToFile); err != nil {
		return nil, err
	}

	path := flagState
	if path == "" {
		path = cfg.General.StatePath
	}
	if path == "" {
		path = store.DefaultPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening state: %w", err)
	}

	opts := []api.Option{api.WithLogger(logging.Named("api"))}
	if d := cfg.Timeout(); d > 0 {
		opts = append(opts, api.WithTimeout(d))
	}
	client := api.NewClient(cfg.API.BaseURL, st, opts...)
	tr := tracker.New(client, st, logging.Named("tracker"))

	logging.Get().Debug("session opened", zap.String("api", client.BaseURL()), zap.String("state", st.Path()))
	return &session{cfg: cfg, store: st, client: client, tracker: tr}, nil
}

func initLogging(cfg config.Config, logToFile bool) error {
	opts := logging.Options{
		Development: cfg.Log.Development,
		Level:       logging.Level(cfg.Log.Level),
		File:        cfg.LogFile(),
	}
	if flagVerbose && !logToFile {
		opts.Level = logging.DebugLevel
		opts.File = ""
	}
	return logging.Init(opts)
}

// Close releases the session. Safe to defer right after openSession.
func (s *session) Close() {
	s.tracker.Close()
	_ = s.store.Close()
	_ = logging.Sync()
}

// requireAuth fails commands that need a signed-in user.
func (s *session) requireAuth() error {
	if !s.tracker.IsAuthenticated() {
		return &apperr.AuthError{Reason: "not logged in, run `gastos login`"}
	}
	return nil
}

// requireReady additionally syncs the profile and insists on a budget.
func (s *session) requireReady(ctx context.Context) error {
	if err := s.requireAuth(); err != nil {
		return err
	}
	if err := s.tracker.SyncProfile(ctx); err != nil && !apperr.IsNetwork(err) {
		return err
	}
	if s.tracker.Phase() == tracker.PhaseNeedsBudget {
		return apperr.Validation("budget", "no budget set, run `gastos budget set <amount>`")
	}
	return nil
}

// progress prints a status line to stderr unless --quiet.
func progress(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}
