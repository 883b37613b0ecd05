package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task status values. Generation always writes pending; downstream
// consumers move tasks through the other states.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// A freshly generated plan spans PlanWeeks week-keys (week1..week4) with
// TasksPerWeek tasks each.
const (
	PlanWeeks    = 4
	TasksPerWeek = 3
)

type RoadmapTask struct {
	Task   string `bson:"task" json:"task"`
	Status string `bson:"status" json:"status"`
}

// Plan maps a week label to its ordered task list.
type Plan map[string][]RoadmapTask

// Roadmap is the AI-generated learning plan, at most one per user.
type Roadmap struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"-"`
	Plan        Plan               `bson:"roadmap" json:"roadmap"`
	GeneratedAt time.Time          `bson:"generated_at" json:"generatedAt"`
}
