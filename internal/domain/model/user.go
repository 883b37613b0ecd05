package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Experience tiers a user can pick during onboarding.
const (
	ExperienceBeginner     = "Complete beginner - Just starting out"
	ExperienceSome         = "Some experience - 1-2 years"
	ExperienceIntermediate = "Intermediate - 3-5 years"
	ExperienceExperienced  = "Experienced - 5+ years"
	ExperienceExpert       = "Expert - 10+ years"
)

var ExperienceTiers = []string{
	ExperienceBeginner,
	ExperienceSome,
	ExperienceIntermediate,
	ExperienceExperienced,
	ExperienceExpert,
}

func IsValidExperience(tier string) bool {
	for _, t := range ExperienceTiers {
		if t == tier {
			return true
		}
	}
	return false
}

// Caps on the onboarding string sets.
const (
	MaxInterests = 20
	MaxSkills    = 30
	MaxGoals     = 15
)

const (
	MinAge = 10
	MaxAge = 100

	MinFullNameLen = 2
	MaxFullNameLen = 100

	MinPasswordLen = 6
)

// Onboarding is the questionnaire sub-record embedded in a User.
type Onboarding struct {
	Age         int      `bson:"age,omitempty" json:"age,omitempty"`
	CurrentRole string   `bson:"currentRole,omitempty" json:"currentRole,omitempty"`
	Experience  string   `bson:"experience,omitempty" json:"experience,omitempty"`
	Interests   []string `bson:"interests" json:"interests"`
	Skills      []string `bson:"skills" json:"skills"`
	Goals       []string `bson:"goals" json:"goals"`
	IsOnboarded bool     `bson:"isOnboarded" json:"isOnboarded"`
}

// Recompute refreshes the derived IsOnboarded flag. True iff the main
// profile fields are present and at least one skill was given.
func (o *Onboarding) Recompute() {
	o.IsOnboarded = o.Age != 0 && o.CurrentRole != "" && o.Experience != "" && len(o.Skills) > 0
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"fullname" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
	// PasswordHash is excluded from default read projections and never
	// serialized in responses.
	PasswordHash string              `bson:"password,omitempty" json:"-"`
	Onboarding   *Onboarding         `bson:"onboarding,omitempty" json:"onboarding,omitempty"`
	RoadmapID    *primitive.ObjectID `bson:"career_roadmap,omitempty" json:"careerRoadmap,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the projection returned to clients.
type PublicUser struct {
	ID         string     `json:"id"`
	FullName   string     `json:"fullName"`
	Email      string     `json:"email"`
	Onboarding Onboarding `json:"onboarding"`
}

// Public strips credentials and normalizes the onboarding sub-record to a
// stable shape (empty sets instead of null) for the frontend.
func (u *User) Public() PublicUser {
	ob := Onboarding{Interests: []string{}, Skills: []string{}, Goals: []string{}}
	if u.Onboarding != nil {
		ob = *u.Onboarding
		if ob.Interests == nil {
			ob.Interests = []string{}
		}
		if ob.Skills == nil {
			ob.Skills = []string{}
		}
		if ob.Goals == nil {
			ob.Goals = []string{}
		}
	}
	return PublicUser{
		ID:         u.ID.Hex(),
		FullName:   u.FullName,
		Email:      u.Email,
		Onboarding: ob,
	}
}
