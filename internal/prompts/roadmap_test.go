package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRoadmapPrompt(t *testing.T) {
	prompt, err := BuildRoadmapPrompt(RoadmapData{
		Company:        "Google",
		Role:           "SDE1",
		JobDescription: "  Python, AWS, Docker  ",
		CompanyInfo:    "Google runs a phone screen then four onsite rounds.",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "COMPANY: Google")
	assert.Contains(t, prompt, "ROLE: SDE1")
	assert.Contains(t, prompt, "JOB DESCRIPTION:\nPython, AWS, Docker\n")
	assert.Contains(t, prompt, "four onsite rounds")
	assert.NotContains(t, prompt, "{{.")
	assert.NotContains(t, prompt, "Standard interview process")
}

func TestBuildRoadmapPrompt_StandardProcessWithoutCompanyInfo(t *testing.T) {
	prompt, err := BuildRoadmapPrompt(RoadmapData{
		Company:        "Acme",
		Role:           "Backend Engineer",
		JobDescription: "Go and Kafka",
		CompanyInfo:    "   ",
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Standard interview process for Backend Engineer positions at Acme.")
}

func TestStandardProcess(t *testing.T) {
	text, err := StandardProcess("Acme", "SRE")
	require.NoError(t, err)
	assert.Contains(t, text, "SRE positions at Acme")
	assert.Contains(t, text, "system design")
}
