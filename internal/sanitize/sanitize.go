// Package sanitize is the trust boundary for job description markup.
// Descriptions may come from imports or the JSON API and are never written
// to a page without passing through Description.
package sanitize

import (
	"html"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"iranconnect-web/internal/util"
)

var (
	descriptionPolicy = newDescriptionPolicy()
	stripPolicy       = bluemonday.StrictPolicy()
)

func newDescriptionPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("p", "br", "strong", "b", "em", "i", "u", "ul", "ol", "li", "h3", "h4", "blockquote", "span")

	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	p.AllowAttrs("dir").Matching(regexp.MustCompile(`^(?i)(rtl|ltr|auto)$`)).Globally()
	return p
}

// Description returns raw reduced to the allow-listed elements, ready to be
// placed in a template without further escaping.
func Description(raw string) template.HTML {
	return template.HTML(descriptionPolicy.Sanitize(raw))
}

// Text strips every tag and returns the readable text of raw.
func Text(raw string) string {
	return util.CleanText(html.UnescapeString(stripPolicy.Sanitize(raw)))
}
