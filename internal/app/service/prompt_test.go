package service

import (
	"strings"
	"testing"

	"career_advisor/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildRoadmapPrompt_Deterministic(t *testing.T) {
	t.Parallel()

	ob := &model.Onboarding{
		Age:         25,
		CurrentRole: "Student",
		Experience:  model.ExperienceBeginner,
		Interests:   []string{"web", "ai"},
		Skills:      []string{"html"},
		Goals:       []string{"get a job"},
	}

	first := BuildRoadmapPrompt(ob)
	second := BuildRoadmapPrompt(ob)
	assert.Equal(t, first, second)

	assert.Contains(t, first, "Age: 25")
	assert.Contains(t, first, "Current Role: Student")
	assert.Contains(t, first, "Interests: web, ai")
	assert.Contains(t, first, `key "roadmap"`)
	assert.Contains(t, first, "no markdown")
	assert.Contains(t, first, "exactly 3 tasks")
}

func TestBuildRoadmapPrompt_AbsentFieldsRenderEmpty(t *testing.T) {
	t.Parallel()

	prompt := BuildRoadmapPrompt(nil)
	assert.Contains(t, prompt, "Age: \n")
	assert.Contains(t, prompt, "Skills: \n")
}

func TestBuildChatPrompt(t *testing.T) {
	t.Parallel()

	prompt := BuildChatPrompt("Ada", nil, "what should I learn next?")
	assert.Contains(t, prompt, "Name: Ada")
	assert.Contains(t, prompt, "Role: Not provided")
	assert.Contains(t, prompt, "Skills: None")
	assert.Contains(t, prompt, "User's message: what should I learn next?")
}

func TestBuildCareerPrompt(t *testing.T) {
	t.Parallel()

	prompt := BuildCareerPrompt(&model.Onboarding{Skills: []string{"go", "sql"}})
	assert.Contains(t, prompt, "Skills: go, sql")
	assert.Contains(t, prompt, `"careers"`)
	// The growth-rate template literal must survive formatting.
	assert.True(t, strings.Contains(prompt, "+25%"))
}
