package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// chrome is page furniture that never belongs to a posting.
const chrome = "nav, footer, header, script, style, noscript, form, iframe, svg, " +
	".ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

const blockElements = "p, div, section, article, h1, h2, h3, h4, h5, h6, li, tr, dd, dt, blockquote, pre"

// ExtractMainText returns the text of the first element matching one of
// contentSelectors, or of the body when none match. Elements matching
// noiseSelectors are dropped first. Block elements end a line and list
// items become "- " bullets so requirements stay one per line.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(chrome).Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}

	content.Find("br").ReplaceWithHtml("\n")
	content.Find("li").PrependHtml("- ")
	content.Find(blockElements).AppendHtml("\n")

	return cleanWhitespace(content.Text()), nil
}

// JobPostingSelectors returns selectors for the description block on common
// job boards (Greenhouse, Lever, Workday) followed by generic page regions.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"#content .section-wrapper",
		"[data-automation-id='jobPostingDescription']",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

// cleanWhitespace collapses space runs, trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
