// Package main provides the prep CLI, a terminal client for AI mock interviews.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prep",
	Short: "AI interview preparation in the terminal",
	Long: "prep uploads your resume, runs a mock interview with generated questions and scored answers, " +
		"builds resumes with PDF export and suggests technical practice problems.",
	SilenceUsage: true,
}

var (
	rootConfigPath string
	rootBackendURL string
	rootStoreURL   string
	rootLogLevel   string
	rootOffline    bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootConfigPath, "config", "", "Path to a JSON or YAML config file")
	pf.StringVar(&rootBackendURL, "backend", "", "Backend base URL (overrides BACKEND_URL)")
	pf.StringVar(&rootStoreURL, "store", "", "Session store: file path, redis:// or postgres:// URL")
	pf.StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&rootOffline, "offline", false, "Generate and score questions locally with Gemini")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
