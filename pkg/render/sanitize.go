package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicyOnce sync.Once
	richTextPolicy     *bluemonday.Policy
)

// SanitizeRichText strips instructor-authored markup down to the inline and
// block elements the editor produces. Scripts, handlers and styles never
// survive.
func SanitizeRichText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(richTextSanitizer().Sanitize(trimmed))
}

func richTextSanitizer() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"p", "br", "strong", "b", "em", "i", "u", "sub", "sup",
			"ul", "ol", "li", "span", "blockquote", "a",
		)
		policy.AllowAttrs("class").OnElements("p", "span", "li")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)

		richTextPolicy = policy
	})
	return richTextPolicy
}
