package textutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Sanitize normalizes raw survey text before classification: strips any HTML
// fragments the survey vendor leaks into free-text answers, unescapes
// entities, and collapses whitespace runs. Plain text passes through
// unchanged apart from trimming.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		// A space before each tag keeps adjacent words apart once the
		// tags drop out.
		padded := strings.ReplaceAll(s, "<", " <")
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(padded)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
