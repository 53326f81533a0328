package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-roadmap/internal/types"
)

func TestFallback_Template(t *testing.T) {
	r := Fallback("Acme", "Backend Engineer", []string{"Go", "go", "Kafka"}, fixedTime)

	assert.Equal(t, "Acme", r.Company)
	assert.Equal(t, "Backend Engineer", r.Role)
	require.Len(t, r.Rounds, 3)
	assert.Equal(t, "Technical Screening", r.Rounds[0].Type)
	assert.Equal(t, "System Design", r.Rounds[1].Type)
	assert.Equal(t, "Behavioral", r.Rounds[2].Type)
	assert.Equal(t, types.DifficultyMedium, r.Difficulty)
	assert.Equal(t, []string{
		"Data Structures", "Algorithms", "Problem Solving",
		"Microservices", "Scalability", "Database Design",
		"Teamwork", "Communication", "Experience",
	}, r.RecommendedOrder)
	assert.Equal(t, []string{"Go", "Kafka"}, r.Evidence.KeySkills)
	assert.Equal(t, 2, r.Evidence.TopicCount)
	assert.Equal(t, fixedTime, r.GeneratedAt)
	assert.Equal(t, types.SchemaVersion, r.Version)
}

func TestFallback_NoSkills(t *testing.T) {
	r := Fallback("Acme", "SRE", nil, fixedTime)

	assert.NotNil(t, r.Evidence.KeySkills)
	assert.Empty(t, r.Evidence.KeySkills)
	assert.Equal(t, 0, r.Evidence.TopicCount)
}

func TestFallback_BlankIdentity(t *testing.T) {
	r := Fallback("  ", "", nil, fixedTime)

	assert.Equal(t, "Unknown", r.Company)
	assert.Equal(t, "Unknown", r.Role)
}

func TestFallback_RecommendedOrderConsistent(t *testing.T) {
	r := Fallback("Acme", "SRE", nil, fixedTime)
	topics := r.AllTopics()
	for _, entry := range r.RecommendedOrder {
		assert.True(t, topics[entry], "%q should appear in a round", entry)
	}
}

func TestFallback_RoundsNotShared(t *testing.T) {
	first := Fallback("A", "B", nil, fixedTime)
	first.Rounds[0].Topics[0] = "mutated"

	second := Fallback("A", "B", nil, fixedTime)
	assert.Equal(t, "Data Structures", second.Rounds[0].Topics[0])
}
