package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"career_advisor/internal/domain/model"
)

var (
	ErrNoJSONFound       = errors.New("no JSON object found in model output")
	ErrMalformedJSON     = errors.New("model output is not valid JSON")
	ErrMissingRoadmapKey = errors.New("parsed JSON missing 'roadmap' object")
)

var (
	openFence  = regexp.MustCompile("(?i)^```[a-z]*[ \t]*\r?\n?")
	closeFence = regexp.MustCompile("```\\s*$")
)

// stripFences removes a leading/trailing markdown code fence (with an
// optional language tag) the model may wrap its output in despite being
// told not to.
func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = openFence.ReplaceAllString(cleaned, "")
	cleaned = closeFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ParseRoadmap extracts the plan from raw model text. Wrapped errors carry
// the raw text for operator logs; handlers never surface it to clients.
func ParseRoadmap(raw string) (model.Plan, error) {
	cleaned := stripFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSONFound
	}
	span := cleaned[start : end+1]

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	rawRoadmap, ok := envelope["roadmap"]
	if !ok {
		return nil, ErrMissingRoadmapKey
	}
	trimmed := bytes.TrimSpace(rawRoadmap)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrMissingRoadmapKey
	}

	var plan model.Plan
	if err := json.Unmarshal(rawRoadmap, &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	for week, tasks := range plan {
		for i := range tasks {
			if tasks[i].Status == "" {
				tasks[i].Status = model.TaskStatusPending
			}
		}
		plan[week] = tasks
	}
	return plan, nil
}

// CheckPlanShape reports whether the plan matches the requested 4x3 form.
// A mismatch is logged by the workflow, not treated as a failure; partial
// or irregular model output is expected to occur occasionally.
func CheckPlanShape(plan model.Plan) error {
	if len(plan) != model.PlanWeeks {
		return fmt.Errorf("expected %d weeks, got %d", model.PlanWeeks, len(plan))
	}
	for week, tasks := range plan {
		if len(tasks) != model.TasksPerWeek {
			return fmt.Errorf("week %q: expected %d tasks, got %d", week, model.TasksPerWeek, len(tasks))
		}
		for i, task := range tasks {
			if strings.TrimSpace(task.Task) == "" {
				return fmt.Errorf("week %q task %d: empty task text", week, i)
			}
		}
	}
	return nil
}
