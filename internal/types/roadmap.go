// Package types provides type definitions for structured data used throughout the interview-roadmap system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
)

// SchemaVersion is the version stamped on every roadmap at creation.
const SchemaVersion = "1.0"

// Difficulty is the overall interview difficulty of a roadmap.
type Difficulty string

// Allowed difficulty values, in canonical casing.
const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyMedium   Difficulty = "Medium"
	DifficultyHard     Difficulty = "Hard"
	DifficultyVeryHard Difficulty = "Very Hard"
)

// Difficulties returns the allowed values from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyVeryHard}
}

// ParseDifficulty matches s case-insensitively against the allowed values.
// Internal whitespace is collapsed so "very   hard" still matches.
func ParseDifficulty(s string) (Difficulty, bool) {
	normalized := strings.ToLower(strings.Join(strings.Fields(s), " "))
	for _, d := range Difficulties() {
		if strings.ToLower(string(d)) == normalized {
			return d, true
		}
	}
	return "", false
}

// Roadmap is the interview-preparation plan produced for one company and role.
// It is created once per run and never modified afterwards.
type Roadmap struct {
	Company          string     `json:"company" validate:"required"`
	Role             string     `json:"role" validate:"required"`
	Rounds           []Round    `json:"rounds" validate:"required,min=1,dive"`
	Difficulty       Difficulty `json:"difficulty" validate:"required,oneof=Easy Medium Hard 'Very Hard'"`
	RecommendedOrder []string   `json:"recommended_order" validate:"dive,required"`
	Evidence         Evidence   `json:"evidence"`
	GeneratedAt      time.Time  `json:"generated_at"`
	Version          string     `json:"version" validate:"required"`
}

// Round is one interview stage with its study topics, in interview order.
type Round struct {
	Type   string   `json:"type" validate:"required"`
	Topics []string `json:"topics" validate:"required,min=1,dive,required"`
}

// Evidence holds the job-description skills the roadmap was built from
type Evidence struct {
	KeySkills  []string `json:"key_skills" validate:"dive,required"`
	TopicCount int      `json:"topic_count" validate:"gte=0"`
}

// AllTopics returns the set of topics across every round.
func (r *Roadmap) AllTopics() map[string]bool {
	topics := make(map[string]bool)
	for _, round := range r.Rounds {
		for _, topic := range round.Topics {
			topics[topic] = true
		}
	}
	return topics
}
