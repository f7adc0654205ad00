package common

import (
	"regexp"
	"strings"
)

// markdownLinkPattern extracts the target from a markdown link: [text](url).
var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizeURL performs basic cleanup on URLs from hand-maintained input
// files: whitespace, trailing punctuation, and markdown artifacts from
// copy-paste.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	// Trailing punctuation from copy-paste: "https://example.com," etc.
	trailingChars := []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}

	leadingChars := []string{"(", "[", "<", "\"", "'"}
	for _, char := range leadingChars {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}
