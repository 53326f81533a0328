// Package ingestion loads job-description text from files, URLs, or an
// interactive reader and normalizes it for prompting and skill extraction.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace = regexp.MustCompile(`[ \t\f\v]+`)
	blankRun   = regexp.MustCompile(`\n{3,}`)
	// bullet glyphs that job boards and word processors emit, including en and em dashes
	bulletPrefix = regexp.MustCompile(`^[*\-\x{2022}\x{00b7}\x{25aa}\x{25e6}\x{2023}\x{25cf}\x{25cb}\x{25a0}\x{2013}\x{2014}][ \t]+`)
)

// invisibles are characters pasted in from web pages that carry no text.
var invisibles = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\u00a0", " ", // no-break space
	"\u2007", " ",
	"\u202f", " ",
	"\ufeff", "", // byte order mark
	"\u200b", "", // zero-width space
	"\u200c", "",
	"\u200d", "",
	"\u00ad", "", // soft hyphen
)

// CleanText normalizes a pasted or decoded job description. Markdown
// headings, list structure and indentation survive; bullets become "- ",
// runs of spaces collapse, and at most one blank line separates blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(invisibles.Replace(content), "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	return strings.TrimSpace(blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}

func cleanLine(line string) string {
	body := strings.TrimSpace(line)
	if body == "" {
		return ""
	}
	if strings.HasPrefix(body, "#") {
		return innerSpace.ReplaceAllString(body, " ")
	}

	indent := strings.Repeat(" ", len(line)-len(strings.TrimLeft(line, " \t")))
	if loc := bulletPrefix.FindStringIndex(body); loc != nil {
		body = "- " + body[loc[1]:]
	}
	return indent + innerSpace.ReplaceAllString(body, " ")
}
