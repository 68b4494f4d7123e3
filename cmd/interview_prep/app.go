package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/interview-prep/internal/auth"
	"github.com/jonathan/interview-prep/internal/backend"
	"github.com/jonathan/interview-prep/internal/coach"
	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/display"
	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/logger"
	"github.com/jonathan/interview-prep/internal/session"
	"github.com/jonathan/interview-prep/internal/techq"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds the dependencies shared by commands.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	session *session.Session
	api     *backend.Client
	auth    *auth.Service
	printer *display.Printer
	prompt  *prompter
	out     io.Writer

	coach *coach.Coach
}

// loadConfig resolves file, environment and persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.BackendURL = rootBackendURL
	}
	if flags.Changed("store") {
		cfg.StoreURL = rootStoreURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootLogLevel
	}
	if flags.Changed("offline") {
		cfg.Offline = rootOffline
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp opens the session and builds the backend client.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx := cmd.Context()

	store, err := session.Open(ctx, cfg.StoreURL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	key, err := cfg.SessionKey(filepath.Join(config.DefaultDir(), "session.key"))
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	sealer, err := session.NewSealer(key)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	sess := session.New(store, sealer)

	ttl, _ := cfg.SessionTTLDuration()
	timeout, _ := cfg.RequestTimeoutDuration()

	a := &app{
		cfg:     cfg,
		log:     log,
		session: sess,
		out:     cmd.OutOrStdout(),
		printer: display.NewPrinter(cmd.OutOrStdout()),
		prompt:  newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
	}

	api, err := backend.New(cfg.BackendURL,
		backend.WithTimeout(timeout),
		backend.WithLogger(log),
		backend.WithToken(func(ctx context.Context) string { return a.auth.Token(ctx) }),
	)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}
	a.api = api
	a.auth = auth.NewService(api, sess, ttl, log)
	return a, nil
}

// Close releases the session store and the model client.
func (a *app) Close() {
	if a.coach != nil {
		_ = a.coach.Close()
	}
	if err := a.session.Close(); err != nil {
		a.log.Warn().Err(err).Msg("failed to close session store")
	}
}

// offlineCoach lazily creates the Gemini-backed coach.
func (a *app) offlineCoach(ctx context.Context) (*coach.Coach, error) {
	if a.coach != nil {
		return a.coach, nil
	}
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), a.cfg.GeminiAPIKey, a.log)
	if err != nil {
		return nil, err
	}
	a.coach = coach.New(client, a.session, a.log)
	return a.coach, nil
}

// interviewSources returns where scripts and scores come from.
func (a *app) interviewSources(ctx context.Context) (interview.ScriptSource, interview.Scorer, error) {
	if !a.cfg.Offline {
		return a.api, a.api, nil
	}
	c, err := a.offlineCoach(ctx)
	if err != nil {
		return nil, nil, err
	}
	return c, c, nil
}

// techQuestionsAPI returns the technical question source.
func (a *app) techQuestionsAPI(ctx context.Context) (techq.API, error) {
	if !a.cfg.Offline {
		return a.api, nil
	}
	return a.offlineCoach(ctx)
}

// printf writes to the command output.
//
//nolint:errcheck // terminal output
func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// withApp adapts a RunE that needs an app.
func withApp(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}

// chromePath returns the configured browser, or "" to let chromedp find one.
func (a *app) chromePath() string {
	if a.cfg.ChromePath == "" {
		return ""
	}
	if _, err := os.Stat(a.cfg.ChromePath); err != nil {
		a.log.Warn().Str("path", a.cfg.ChromePath).Msg("configured chrome_path not found, using default lookup")
		return ""
	}
	return a.cfg.ChromePath
}
