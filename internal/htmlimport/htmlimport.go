// Package htmlimport converts itinerary pages pasted as HTML into Markdown text that the
// line filter can clean up.
package htmlimport

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed before conversion; they never carry schedule rows.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// markdownEscape matches a backslash escape in front of ASCII punctuation.
var markdownEscape = regexp.MustCompile("\\\\([!-/:-@\\[-`{-~])")

// Extract returns the main content fragment of a page with noise elements removed.
func Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		if sel := doc.Find(tag); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	out, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return out, nil
}

// ToMarkdown extracts the main content of a page and converts it to Markdown. Markdown
// escapes are removed so that pipes and dashes in schedule rows survive as typed.
func ToMarkdown(html string) (string, error) {
	fragment, err := Extract(html)
	if err != nil {
		return "", err
	}
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdownEscape.ReplaceAllString(md, "$1")), nil
}
