package markdown

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips everything outside the formatting allow-list.
// Safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer allows basic formatting, headings, lists, quotes, code and
// links. Links open in a new tab.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements("p", "br", "hr", "b", "i", "em", "strong", "del", "span",
		"ul", "ol", "li", "blockquote", "code", "pre",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("id").Matching(regexp.MustCompile(`^[\w-]+$`)).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[\w\- ]+$`)).Globally()

	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{policy: p}
}

// Sanitize returns html with disallowed elements and attributes removed
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
