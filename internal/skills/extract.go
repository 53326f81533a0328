package skills

import (
	"regexp"
	"sort"
	"strings"
)

// catalogEntry is a canonical skill and the spellings that identify it in free text.
// Aliases are matched case-insensitively and only name the same technology.
// caseSensitive spellings must match exactly. ambiguous spellings are also
// ordinary English words ("Go", "Swift") and count only in a technical context.
type catalogEntry struct {
	name          string
	aliases       []string
	caseSensitive []string
	ambiguous     []string
}

var catalog = []catalogEntry{
	{name: "Python", aliases: []string{"python"}},
	{name: "Java", aliases: []string{"java"}},
	{name: "JavaScript", aliases: []string{"javascript", "js"}},
	{name: "TypeScript", aliases: []string{"typescript"}},
	{name: "Go", aliases: []string{"golang", "go lang"}, ambiguous: []string{"Go"}},
	{name: "Rust", ambiguous: []string{"Rust"}},
	{name: "C++", aliases: []string{"c++", "cpp"}},
	{name: "C#", aliases: []string{"c#"}},
	{name: ".NET", aliases: []string{".net", "dotnet"}},
	{name: "Ruby", aliases: []string{"ruby on rails"}, ambiguous: []string{"Ruby"}},
	{name: "Rails", aliases: []string{"ruby on rails"}, ambiguous: []string{"Rails"}},
	{name: "Kotlin", aliases: []string{"kotlin"}},
	{name: "Swift", ambiguous: []string{"Swift"}},
	{name: "Scala", aliases: []string{"scala"}},
	{name: "PHP", aliases: []string{"php"}},
	{name: "SQL", aliases: []string{"sql"}},
	{name: "PostgreSQL", aliases: []string{"postgresql", "postgres"}},
	{name: "MySQL", aliases: []string{"mysql"}},
	{name: "MongoDB", aliases: []string{"mongodb", "mongo"}},
	{name: "Redis", aliases: []string{"redis"}},
	{name: "Kafka", aliases: []string{"kafka"}},
	{name: "Docker", aliases: []string{"docker"}},
	{name: "Kubernetes", aliases: []string{"kubernetes", "k8s"}},
	{name: "Terraform", aliases: []string{"terraform"}},
	{name: "AWS", aliases: []string{"aws", "amazon web services"}},
	{name: "GCP", aliases: []string{"gcp", "google cloud"}},
	{name: "Azure", aliases: []string{"azure"}},
	{name: "Linux", aliases: []string{"linux"}},
	{name: "Git", aliases: []string{"git"}},
	{name: "CI/CD", aliases: []string{"ci/cd"}},
	{name: "React", aliases: []string{"reactjs", "react.js"}, ambiguous: []string{"React"}},
	{name: "Angular", aliases: []string{"angularjs"}, ambiguous: []string{"Angular"}},
	{name: "Vue", aliases: []string{"vue", "vuejs", "vue.js"}},
	{name: "Node.js", aliases: []string{"node.js", "nodejs"}},
	{name: "Django", aliases: []string{"django"}},
	{name: "Flask", aliases: []string{"flask"}},
	{name: "Spring", ambiguous: []string{"Spring"}},
	{name: "Spring Boot", aliases: []string{"spring boot"}},
	{name: "GraphQL", aliases: []string{"graphql"}},
	{name: "REST", aliases: []string{"rest api", "restful", "rest apis"}},
	{name: "gRPC", aliases: []string{"grpc"}},
	{name: "Microservices", aliases: []string{"microservices", "microservice"}},
	{name: "Distributed Systems", aliases: []string{"distributed systems", "distributed system"}},
	{name: "System Design", aliases: []string{"system design"}},
	{name: "Data Structures", aliases: []string{"data structures"}},
	{name: "Algorithms", aliases: []string{"algorithms"}},
	{name: "Machine Learning", aliases: []string{"machine learning"}, caseSensitive: []string{"ML"}},
	{name: "TensorFlow", aliases: []string{"tensorflow"}},
	{name: "PyTorch", aliases: []string{"pytorch"}},
	{name: "Spark", aliases: []string{"pyspark", "apache spark"}, ambiguous: []string{"Spark"}},
	{name: "Agile", aliases: []string{"agile"}},
	{name: "Scrum", aliases: []string{"scrum"}},
}

// contextWindow bounds how much text around an ambiguous match is inspected.
const contextWindow = 40

var (
	// text just before an ambiguous word that marks it as a technology:
	// a list bullet, a slash or parenthesis, or "in", "with", "using", ...
	techBefore = regexp.MustCompile(`(?i)(?:(?:^|[\s(])(?:in|with|using|and|or|like|as)\s+|[/(&+]\s*|(?:^|\n)[ \t]*[-*\x{2022}][ \t]*)$`)
	// text just after: a list separator, end of line or sentence, another
	// list item, or a noun that only follows a technology.
	techAfter = regexp.MustCompile(`^(?:[ \t]*(?:[,/;|)&+]|\n|$)|[.!?](?:\s|$)|\s+(?:and|or)\b|\s*\(|\s+(?:services?|code|codebase|backends?|developers?|engineers?|engineering|programming|experience|microservices|apps?|applications?|SDKs?|APIs?|development|stack|ecosystem|toolchain|modules?|libraries)\b)`)
)

// pattern is one compiled spelling of a skill.
type pattern struct {
	re           *regexp.Regexp
	needsContext bool
}

// compiledEntry pairs a canonical skill with its compiled patterns
type compiledEntry struct {
	name     string
	patterns []pattern
}

var compiledCatalog = compileCatalog(catalog)

// boundaryPattern wraps an alias so it only matches as a standalone token.
// Symbols common in skill names (+ # .) count as part of the token. The
// spelling itself is capture group 2.
func boundaryPattern(alias string, caseSensitive bool) *regexp.Regexp {
	prefix := "(?i)"
	if caseSensitive {
		prefix = ""
	}
	return regexp.MustCompile(prefix + `(^|[^A-Za-z0-9+#.])(` + regexp.QuoteMeta(alias) + `)($|[^A-Za-z0-9+#])`)
}

func compileCatalog(entries []catalogEntry) []compiledEntry {
	compiled := make([]compiledEntry, 0, len(entries))
	for _, entry := range entries {
		ce := compiledEntry{name: entry.name}
		for _, alias := range entry.aliases {
			ce.patterns = append(ce.patterns, pattern{re: boundaryPattern(alias, false)})
		}
		for _, alias := range entry.caseSensitive {
			ce.patterns = append(ce.patterns, pattern{re: boundaryPattern(alias, true)})
		}
		for _, alias := range entry.ambiguous {
			ce.patterns = append(ce.patterns, pattern{re: boundaryPattern(alias, true), needsContext: true})
		}
		compiled = append(compiled, ce)
	}
	return compiled
}

// firstIndex returns the offset of the first accepted match in text, or -1.
func (p pattern) firstIndex(text string) int {
	for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[4], loc[5]
		if !p.needsContext || technicalContext(text[:start], text[end:]) {
			return start
		}
	}
	return -1
}

func technicalContext(before, after string) bool {
	if len(before) > contextWindow {
		before = before[len(before)-contextWindow:]
	}
	if len(after) > contextWindow {
		after = after[:contextWindow]
	}
	return techBefore.MatchString(before) || techAfter.MatchString(after)
}

// ExtractKeySkills scans job-description text for known skills and returns
// their canonical names ordered by first mention. The result is never nil.
func ExtractKeySkills(jdText string) []string {
	if strings.TrimSpace(jdText) == "" {
		return []string{}
	}

	type hit struct {
		name  string
		index int
	}
	var hits []hit

	for _, entry := range compiledCatalog {
		first := -1
		for _, p := range entry.patterns {
			if idx := p.firstIndex(jdText); idx >= 0 && (first < 0 || idx < first) {
				first = idx
			}
		}
		if first >= 0 {
			hits = append(hits, hit{name: entry.name, index: first})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].index < hits[j].index
	})

	names := make([]string, 0, len(hits))
	for _, h := range hits {
		names = append(names, h.name)
	}
	return Dedupe(names)
}
