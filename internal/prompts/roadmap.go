package prompts

import "strings"

// Roadmap prompt file and keys.
const (
	RoadmapFile        = "roadmap.json"
	KeyGenerateRoadmap = "generate-roadmap"
	KeyStandardProcess = "standard-process"
)

// RoadmapData is the input for a roadmap generation prompt.
// A blank CompanyInfo is replaced with the standard interview process text.
type RoadmapData struct {
	Company        string
	Role           string
	JobDescription string
	CompanyInfo    string
}

// StandardProcess returns the generic interview-process description used
// when no company information was found.
func StandardProcess(company, role string) (string, error) {
	template, err := Get(RoadmapFile, KeyStandardProcess)
	if err != nil {
		return "", err
	}
	return Render(template, map[string]string{
		"Company": company,
		"Role":    role,
	})
}

// BuildRoadmapPrompt renders the roadmap generation prompt.
func BuildRoadmapPrompt(data RoadmapData) (string, error) {
	info := strings.TrimSpace(data.CompanyInfo)
	if info == "" {
		standard, err := StandardProcess(data.Company, data.Role)
		if err != nil {
			return "", err
		}
		info = standard
	}

	template, err := Get(RoadmapFile, KeyGenerateRoadmap)
	if err != nil {
		return "", err
	}
	return Render(template, map[string]string{
		"Company":        data.Company,
		"Role":           data.Role,
		"JobDescription": strings.TrimSpace(data.JobDescription),
		"CompanyInfo":    info,
	})
}
