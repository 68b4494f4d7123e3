package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/jd", "https://"} {
		_, err := URL(context.Background(), raw, nil)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr, raw)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestExtractMainText_JobDescription(t *testing.T) {
	html := `
	<html>
		<head><title>Backend Engineer</title></head>
		<body>
			<nav>Navigation</nav>
			<div class="sidebar">Sidebar junk</div>
			<div class="job-description">
				<h2>Requirements</h2>
				<ul><li>5 years   experience in Go</li><li>Kubernetes</li></ul>
			</div>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := ExtractMainText(html, PlatformUnknown.ContentSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Requirements\n5 years experience in Go\nKubernetes", text)
	assert.Equal(t, "Backend Engineer", Title(html))
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	html := `<html><body><div>Some content here.</div><script>var x = 1;</script></body></html>`

	text, err := ExtractMainText(html, []string{".missing"})
	require.NoError(t, err)
	assert.Equal(t, "Some content here.", text)
}

func TestExtractMainText_PlatformNoise(t *testing.T) {
	html := `
	<html><body>
		<div class="challenge-body-html">
			<p>Given an array of integers, return indices of two numbers.</p>
			<div class="discussion">Spoiler: use a hash map</div>
		</div>
	</body></html>`

	text, err := ExtractMainText(html, PlatformHackerRank.ContentSelectors(), PlatformHackerRank.NoiseSelectors()...)
	require.NoError(t, err)
	assert.Contains(t, text, "two numbers")
	assert.NotContains(t, text, "Spoiler")
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		want     Platform
		problems bool
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse, false},
		{"https://jobs.lever.co/acme/abc", PlatformLever, false},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/1", PlatformWorkday, false},
		{"https://www.linkedin.com/jobs/view/42", PlatformLinkedIn, false},
		{"https://leetcode.com/problems/two-sum/", PlatformLeetCode, true},
		{"https://www.geeksforgeeks.org/problems/reverse-a-linked-list/1", PlatformGeeksForGeeks, true},
		{"https://www.hackerrank.com/challenges/solve-me-first", PlatformHackerRank, true},
		{"https://notleetcode.com/problems/x", PlatformUnknown, false},
		{"::bad", PlatformUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			p := DetectPlatform(tt.url)
			assert.Equal(t, tt.want, p)
			assert.Equal(t, tt.problems, p.IsProblemSite())
			assert.NotEmpty(t, p.ContentSelectors())
		})
	}
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("   short   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength+1)))
}
