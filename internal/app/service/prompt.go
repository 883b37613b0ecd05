package service

import (
	"fmt"
	"strings"

	"career_advisor/internal/domain/model"
)

// Prompt builders are pure: same profile in, same text out. No network or
// storage access happens here.

// BuildRoadmapPrompt renders the onboarding profile into the instruction
// for a 4-week, 12-task JSON roadmap. Absent fields render as empty; an
// incomplete profile still yields a valid (if generic) plan.
func BuildRoadmapPrompt(ob *model.Onboarding) string {
	if ob == nil {
		ob = &model.Onboarding{}
	}
	age := ""
	if ob.Age != 0 {
		age = fmt.Sprintf("%d", ob.Age)
	}
	return fmt.Sprintf(`
Generate a 4-week learning roadmap in JSON.
- Each week must contain exactly 3 tasks (total 12 tasks).
- Each task should have: "task" (string) and "status" ("pending").
- Personalize using:
  Age: %s
  Current Role: %s
  Experience: %s
  Interests: %s
  Skills: %s
  Goals: %s
- Return ONLY valid JSON (an object with key "roadmap"), no markdown, no explanations.
`,
		age,
		ob.CurrentRole,
		ob.Experience,
		strings.Join(ob.Interests, ", "),
		strings.Join(ob.Skills, ", "),
		strings.Join(ob.Goals, ", "),
	)
}

// BuildChatPrompt renders the user's profile plus their message into a
// plain-language assistant instruction.
func BuildChatPrompt(fullName string, ob *model.Onboarding, message string) string {
	if ob == nil {
		ob = &model.Onboarding{}
	}
	context := fmt.Sprintf(`
User Info:
Name: %s
Role: %s
Experience: %s
Interests: %s
Skills: %s
Goals: %s
`,
		orDefault(fullName, "Unknown"),
		orDefault(ob.CurrentRole, "Not provided"),
		orDefault(ob.Experience, "Not provided"),
		orDefault(strings.Join(ob.Interests, ", "), "None"),
		orDefault(strings.Join(ob.Skills, ", "), "None"),
		orDefault(strings.Join(ob.Goals, ", "), "None"),
	)

	return fmt.Sprintf(`
You are a career assistant chatbot. Use the user's onboarding info to personalize replies.
Do not use Markdown, or special formatting.
Reply in plain natural language, like a modern chat assistant.
%s
User's message: %s
`, context, message)
}

// BuildCareerPrompt requests 3 career paths as a strict JSON object with a
// top-level "careers" array.
func BuildCareerPrompt(ob *model.Onboarding) string {
	if ob == nil {
		ob = &model.Onboarding{}
	}
	return fmt.Sprintf(`
You are a career advisor AI.
Based on this user's profile:
- Skills: %s
- Interests: %s
- Goals: %s

Suggest 3 career paths.
Return response strictly in JSON like this:
{
  "careers": [
    {
      "id": "unique-id",
      "title": "Software Engineer",
      "description": "Designs applications...",
      "salaryRange": "$70,000 - $120,000",
      "growthRate": "+25%%",
      "requiredSkills": ["JavaScript", "Problem Solving"],
      "missingSkills": ["System Design"],
      "industries": ["Tech", "Finance"],
      "education": "Bachelor's degree in CS",
      "experience": "Entry level",
      "jobOutlook": "excellent"
    }
  ]
}
`,
		orDefault(strings.Join(ob.Skills, ", "), "None"),
		orDefault(strings.Join(ob.Interests, ", "), "None"),
		orDefault(strings.Join(ob.Goals, ", "), "None"),
	)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
