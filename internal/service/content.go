package service

import (
	"regexp"
	"strings"
)

var (
	htmlTagPattern   = regexp.MustCompile(`(?i)<[a-z][\s\S]*>`)
	paragraphPattern = regexp.MustCompile(`\n{2,}`)
	slugStripPattern = regexp.MustCompile(`[^\w-]+`)
)

// Slugify derives a URL-safe identifier: lowercase, spaces to hyphens,
// non-word characters stripped.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	return slugStripPattern.ReplaceAllString(s, "")
}

// RenderContent converts plain text into paragraph markup. Blank lines
// delimit paragraphs, single newlines become <br>. Content that already
// contains markup (e.g. from a rich text editor) passes through unchanged.
func RenderContent(text string) string {
	if text == "" {
		return ""
	}
	if htmlTagPattern.MatchString(text) {
		return text
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))

	var b strings.Builder
	for _, p := range paragraphPattern.Split(text, -1) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.TrimSpace(strings.ReplaceAll(p, "\n", "<br>")))
		b.WriteString("</p>")
	}
	return b.String()
}
