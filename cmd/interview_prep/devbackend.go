package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/interview-prep/internal/coach"
	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/devbackend"
	"github.com/jonathan/interview-prep/internal/devbackend/ratelimit"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/logger"
	"github.com/jonathan/interview-prep/internal/pdftext"
	"github.com/spf13/cobra"
)

var devBackendCmd = &cobra.Command{
	Use:   "dev-backend",
	Short: "Run a local backend implementing the interview API",
	Long: `Starts an HTTP server with the endpoints the client uses: signup, login,
upload, script generation, answer marking, technical questions and LeetCode
stats. Questions come from Gemini when GEMINI_API_KEY is set and from a
built-in deterministic generator otherwise.`,
	Args: cobra.NoArgs,
	RunE: runDevBackend,
}

var devBackendPort int

func init() {
	devBackendCmd.Flags().IntVarP(&devBackendPort, "port", "p", 8080, "Port to listen on")
	rootCmd.AddCommand(devBackendCmd)
}

func runDevBackend(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authCfg, err := config.NewDevAuthConfig()
	if err != nil {
		return err
	}
	extractor, err := pdftext.New(ctx, log)
	if err != nil {
		return err
	}

	var gen devbackend.Generator
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey, log)
		if err != nil {
			return err
		}
		c := coach.New(client, nil, log)
		defer func() { _ = c.Close() }()
		gen = c
		log.Info().Msg("generating questions with Gemini")
	} else {
		log.Info().Msg("GEMINI_API_KEY not set, using canned questions")
	}

	srv, err := devbackend.New(devbackend.Config{
		Port:      devBackendPort,
		Auth:      authCfg,
		Generator: gen,
		Extractor: extractor,
		RateLimit: ratelimit.LoadConfig(),
		Log:       log,
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	return srv.Start(ctx)
}
