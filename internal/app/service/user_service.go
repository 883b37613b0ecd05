package service

import (
	"context"
	"fmt"

	"career_advisor/internal/common"
	"career_advisor/internal/domain/model"
	"career_advisor/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Me returns the current user, re-read from the store so a concurrent
// profile update is never served stale.
func (s *UserService) Me(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// OnboardingRequest carries a partial questionnaire update; nil fields
// keep their stored values.
type OnboardingRequest struct {
	Age         *int      `json:"age"`
	CurrentRole *string   `json:"currentRole"`
	Experience  *string   `json:"experience"`
	Interests   *[]string `json:"interests"`
	Skills      *[]string `json:"skills"`
	Goals       *[]string `json:"goals"`
}

func (r OnboardingRequest) validate() error {
	if r.Age != nil && (*r.Age < model.MinAge || *r.Age > model.MaxAge) {
		return fmt.Errorf("age must be between %d and %d: %w", model.MinAge, model.MaxAge, common.ErrValidation)
	}
	if r.Experience != nil && !model.IsValidExperience(*r.Experience) {
		return fmt.Errorf("unknown experience tier: %w", common.ErrValidation)
	}
	if r.Interests != nil && len(*r.Interests) > model.MaxInterests {
		return fmt.Errorf("too many interests (max %d): %w", model.MaxInterests, common.ErrValidation)
	}
	if r.Skills != nil && len(*r.Skills) > model.MaxSkills {
		return fmt.Errorf("too many skills (max %d): %w", model.MaxSkills, common.ErrValidation)
	}
	if r.Goals != nil && len(*r.Goals) > model.MaxGoals {
		return fmt.Errorf("too many goals (max %d): %w", model.MaxGoals, common.ErrValidation)
	}
	return nil
}

// UpdateOnboarding merges the partial update into the stored profile and
// recomputes the derived isOnboarded flag.
func (s *UserService) UpdateOnboarding(ctx context.Context, userID string, req OnboardingRequest) (*model.User, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ob := user.Onboarding
	if ob == nil {
		ob = &model.Onboarding{}
	}
	if req.Age != nil {
		ob.Age = *req.Age
	}
	if req.CurrentRole != nil {
		ob.CurrentRole = *req.CurrentRole
	}
	if req.Experience != nil {
		ob.Experience = *req.Experience
	}
	if req.Interests != nil {
		ob.Interests = *req.Interests
	}
	if req.Skills != nil {
		ob.Skills = *req.Skills
	}
	if req.Goals != nil {
		ob.Goals = *req.Goals
	}
	ob.Recompute()

	if err := s.userRepo.UpdateOnboarding(ctx, userID, ob); err != nil {
		return nil, err
	}

	user.Onboarding = ob
	return user, nil
}
