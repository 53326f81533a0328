package roadmap

import (
	"strings"
	"time"

	"github.com/jonathan/interview-roadmap/internal/skills"
	"github.com/jonathan/interview-roadmap/internal/types"
)

// unknownIdentity fills a blank company or role on a fallback record
const unknownIdentity = "Unknown"

// fallbackRounds returns a fresh copy of the fixed interview template.
func fallbackRounds() []types.Round {
	return []types.Round{
		{Type: "Technical Screening", Topics: []string{"Data Structures", "Algorithms", "Problem Solving"}},
		{Type: "System Design", Topics: []string{"Microservices", "Scalability", "Database Design"}},
		{Type: "Behavioral", Topics: []string{"Teamwork", "Communication", "Experience"}},
	}
}

// Fallback builds the default roadmap used whenever model output is missing
// or rejected. It never fails.
func Fallback(company, role string, knownSkills []string, now time.Time) types.Roadmap {
	rounds := fallbackRounds()

	var order []string
	for _, round := range rounds {
		order = append(order, round.Topics...)
	}

	keySkills := skills.Dedupe(knownSkills)

	return types.Roadmap{
		Company:          orUnknown(company),
		Role:             orUnknown(role),
		Rounds:           rounds,
		Difficulty:       types.DifficultyMedium,
		RecommendedOrder: order,
		Evidence: types.Evidence{
			KeySkills:  keySkills,
			TopicCount: len(keySkills),
		},
		GeneratedAt: now.UTC(),
		Version:     types.SchemaVersion,
	}
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unknownIdentity
	}
	return s
}
