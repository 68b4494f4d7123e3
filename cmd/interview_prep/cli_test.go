package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/devbackend"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const cliResumeText = "Ada Lovelace\nBackend engineer. Go, PostgreSQL and Kubernetes in production."

type cliExtractor struct{}

func (cliExtractor) Extract(_ context.Context, r io.Reader, _ string) (string, error) {
	_, _ = io.ReadAll(r)
	return cliResumeText, nil
}

// setupCLI points the CLI at a fresh dev backend and a temporary session file.
func setupCLI(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}
	srv, err := devbackend.New(devbackend.Config{
		Auth:      &config.DevAuthConfig{BcryptCost: bcrypt.MinCost, JWTSecret: "cli-test-secret", ExpirationHours: 1},
		Extractor: cliExtractor{},
		Log:       zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	t.Setenv("BACKEND_URL", ts.URL)
	t.Setenv("PREP_STORE_URL", filepath.Join(dir, "session.json"))
	t.Setenv("PREP_SESSION_SECRET", "cli-test-session-secret")
	t.Setenv("PREP_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("PREP_OFFLINE", "false")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writePDF(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n1 0 obj << /Type /Catalog >> endobj\ntrailer << >>\n%%EOF\n"), 0o644))
	return path
}

func TestCLI_FullInterviewFlow(t *testing.T) {
	dir := setupCLI(t)

	out, err := execute(t, "Ada\nada@example.com\nsecret\nsecret\n", "signup")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Account created.")

	out, err = execute(t, "ada@example.com\nsecret\n", "login")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Welcome, Ada!")

	out, err = execute(t, "", "whoami")
	require.NoError(t, err, out)
	assert.Contains(t, out, "ada@example.com")

	out, err = execute(t, "", "upload", writePDF(t, dir))
	require.NoError(t, err, out)
	assert.Contains(t, out, "Resume analyzed successfully!")

	// every canned question has exactly one follow-up
	answers := strings.Repeat("I led the migration to Go and measured the latency win.\n\n", 14)
	out, err = execute(t, answers, "interview")
	require.NoError(t, err, out)
	assert.Contains(t, out, "QUESTION 1 OF 7")
	assert.Contains(t, out, "Interview complete!")

	out, err = execute(t, "", "results")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Questions answered: 14")

	out, err = execute(t, "", "profile")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Ada")
}

func TestCLI_InterviewWithoutUpload(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, "", "interview")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prep upload")
}

func TestCLI_ResultsWithoutData(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "", "results")
	require.NoError(t, err)
	assert.Contains(t, out, "No interview data found.")
}

func TestCLI_UploadRejectsNonPDF(t *testing.T) {
	dir := setupCLI(t)
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text resume"), 0o644))

	_, err := execute(t, "", "upload", path)
	assert.Error(t, err)
}

func TestCLI_ResumeCreateListDelete(t *testing.T) {
	setupCLI(t)

	input := strings.Join([]string{
		"Ada Lovelace", "ada@example.com", "+1 555 010 0000", "", "",
		// education
		"Cambridge", "BSc Mathematics", "UK", "2010-2014", "n",
		// experience
		"Engineer", "Analytical Engines", "London", "2015-2020", "Built the difference engine", "", "n",
		// projects
		"Notes", "Go", "2021", "Wrote the first program", "", "n",
		// skills
		"Go, Python", "", "Docker", "",
	}, "\n") + "\n"

	out, err := execute(t, input, "resume", "create")
	require.NoError(t, err, out)
	m := regexp.MustCompile(`Resume (\d+) saved\.`).FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id := m[1]

	out, err = execute(t, "", "resume", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Ada Lovelace")

	out, err = execute(t, "", "resume", "show", id)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Analytical Engines")

	out, err = execute(t, "n\n", "resume", "delete", id)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Nothing deleted.")

	out, err = execute(t, "y\n", "resume", "delete", id)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Resume "+id+" deleted.")

	_, err = execute(t, "", "resume", "show", "x")
	assert.Error(t, err)
}

func TestCLI_SessionClear(t *testing.T) {
	dir := setupCLI(t)

	_, err := execute(t, "", "upload", writePDF(t, dir))
	require.NoError(t, err)

	out, err := execute(t, "", "session")
	require.NoError(t, err, out)
	assert.Contains(t, out, "url")

	out, err = execute(t, "y\n", "session", "clear")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Session cleared.")

	_, err = execute(t, "", "interview")
	assert.Error(t, err)
}

func TestCLI_TechQuestionsFromArgs(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "", "tech-questions", "--limit", "3", "Backend engineer with Go, Redis and SQL")
	require.NoError(t, err, out)
	assert.Contains(t, out, "TECHNICAL QUESTIONS")
	assert.Contains(t, out, "leetcode.com")
}
