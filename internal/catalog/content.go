package catalog

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanDescription strips the HTML markup the catalog embeds in movie
// descriptions and collapses the remaining whitespace for terminal
// display. Parsing with goquery keeps entity handling correct; a bare
// tag-stripping regexp would mangle nested markup.
func CleanDescription(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
