package fetch

import (
	"net/url"
	"strings"
)

// Platform is a site whose page layout is known.
type Platform string

// Known platforms.
const (
	PlatformGreenhouse    Platform = "greenhouse"
	PlatformLever         Platform = "lever"
	PlatformWorkday       Platform = "workday"
	PlatformLinkedIn      Platform = "linkedin"
	PlatformLeetCode      Platform = "leetcode"
	PlatformGeeksForGeeks Platform = "geeksforgeeks"
	PlatformHackerRank    Platform = "hackerrank"
	PlatformUnknown       Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
	{"linkedin.com", PlatformLinkedIn},
	{"leetcode.com", PlatformLeetCode},
	{"leetcode.cn", PlatformLeetCode},
	{"geeksforgeeks.org", PlatformGeeksForGeeks},
	{"hackerrank.com", PlatformHackerRank},
}

// DetectPlatform identifies the site from a URL's host.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// IsProblemSite reports whether p hosts practice problems rather than job posts.
func (p Platform) IsProblemSite() bool {
	switch p {
	case PlatformLeetCode, PlatformGeeksForGeeks, PlatformHackerRank:
		return true
	}
	return false
}

// ContentSelectors returns the main-content selectors for p, most specific first.
func (p Platform) ContentSelectors() []string {
	switch p {
	case PlatformGreenhouse:
		return []string{".job__description.body", ".job__description", "#content", ".job-post-container"}
	case PlatformLever:
		return []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"}
	case PlatformWorkday:
		return []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"}
	case PlatformLinkedIn:
		return []string{".show-more-less-html__markup", ".description__text", ".jobs-description"}
	case PlatformLeetCode:
		return []string{"[data-track-load='description_content']", ".elfjS", ".question-content"}
	case PlatformGeeksForGeeks:
		return []string{".problems_problem_content__Xm_eO", ".problem-statement", "article", ".text"}
	case PlatformHackerRank:
		return []string{".challenge-body-html", ".problem-statement", ".challenge_problem_statement"}
	default:
		return []string{
			".job-description", "#job-description", ".job-details", ".posting-content",
			"[data-testid='job-description']", "main", "article", ".content", "#content",
		}
	}
}

// NoiseSelectors returns elements to strip for p in addition to the common noise.
func (p Platform) NoiseSelectors() []string {
	common := []string{
		"#application-form", ".application-form", ".apply-button-container",
		".eeo-statement", ".voluntary-disclosure", ".legal-disclosure",
	}
	switch p {
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']")
	case PlatformLinkedIn:
		return append(common, ".sign-in-modal", ".top-card-layout__cta-container")
	case PlatformLeetCode, PlatformGeeksForGeeks, PlatformHackerRank:
		return []string{".editor", ".CodeMirror", ".monaco-editor", ".discussion", ".comments"}
	default:
		return common
	}
}
