package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMainText(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		noise   []string
		want    []string
		notWant []string
	}{
		{
			name: "main element without chrome",
			html: `<html><body>
				<nav>Navigation</nav>
				<main><h1>Main Content</h1><p>This is the important text.</p></main>
				<footer>Footer</footer>
			</body></html>`,
			want:    []string{"Main Content", "important text"},
			notWant: []string{"Navigation", "Footer"},
		},
		{
			name:    "falls back to body",
			html:    `<html><body><div>Some content here.</div><script>var x = 1;</script></body></html>`,
			want:    []string{"Some content here."},
			notWant: []string{"var x"},
		},
		{
			name: "job board description block wins over main",
			html: `<html><body><main>
				<div class="sidebar">Sidebar junk</div>
				<div class="job-description"><h2>Requirements</h2><p>5 years experience in Go</p></div>
				<div>Similar jobs</div>
			</main></body></html>`,
			want:    []string{"Requirements", "5 years experience in Go"},
			notWant: []string{"Sidebar junk", "Similar jobs"},
		},
		{
			name:    "noise selectors",
			html:    `<html><body><main><p>Keep</p><div class="apply">Apply now</div></main></body></html>`,
			noise:   []string{".apply"},
			want:    []string{"Keep"},
			notWant: []string{"Apply now"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractMainText(tt.html, JobPostingSelectors(), tt.noise...)
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestExtractMainText_KeepsLineStructure(t *testing.T) {
	html := `<div class="job-description"><h2>Requirements</h2><ul><li>Python</li><li>Apache   <b>Kafka</b></li></ul><p>Nice to have:<br>Docker</p></div>`

	text, err := ExtractMainText(html, JobPostingSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Requirements\n- Python\n- Apache Kafka\nNice to have:\nDocker", text)
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", cleanWhitespace("  a \t b \n\n   \n c  "))
	assert.Equal(t, "", cleanWhitespace(" \n \n"))
}
