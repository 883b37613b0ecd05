package service

import (
	"context"
	"errors"
	"time"

	"career_advisor/internal/common"
	"career_advisor/internal/domain/model"
	"career_advisor/internal/domain/repository"

	"go.uber.org/zap"
)

// CompletionClient is the single external-network dependency of the AI
// workflows: prompt text in, raw model text out, bounded wait.
type CompletionClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type RoadmapService struct {
	userRepo    repository.UserRepository
	roadmapRepo repository.RoadmapRepository
	ai          CompletionClient
	log         *zap.Logger
}

func NewRoadmapService(userRepo repository.UserRepository, roadmapRepo repository.RoadmapRepository, ai CompletionClient, logger *zap.Logger) *RoadmapService {
	return &RoadmapService{userRepo: userRepo, roadmapRepo: roadmapRepo, ai: ai, log: logger}
}

// GenerateAndSave builds a prompt from the user's onboarding profile,
// calls the model, parses the plan and atomically upserts the user's
// single roadmap document. Gateway and parser causes are logged in full
// but surface to clients as one generic generation failure.
func (s *RoadmapService) GenerateAndSave(ctx context.Context, userID string) (*model.Roadmap, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Onboarding may be incomplete; the prompt renders absent fields empty
	// and the result is simply less personalized.
	prompt := BuildRoadmapPrompt(user.Onboarding)

	raw, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		s.log.Error("roadmap model call failed", zap.String("user_id", userID), zap.Error(err))
		return nil, common.ErrGenerationFailed
	}

	plan, err := ParseRoadmap(raw)
	if err != nil {
		s.log.Error("roadmap parse failed",
			zap.String("user_id", userID),
			zap.Error(err),
			zap.String("raw_output", raw))
		return nil, common.ErrGenerationFailed
	}

	if shapeErr := CheckPlanShape(plan); shapeErr != nil {
		s.log.Warn("roadmap deviates from requested 4x3 shape",
			zap.String("user_id", userID),
			zap.Error(shapeErr))
	}

	roadmap, err := s.roadmapRepo.Upsert(ctx, userID, plan, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// Back-reference is a convenience index, not the source of truth; a
	// failure here must not fail the already-saved roadmap.
	if user.RoadmapID == nil || *user.RoadmapID != roadmap.ID {
		if err := s.userRepo.SetRoadmapRef(ctx, userID, roadmap.ID); err != nil {
			s.log.Warn("failed to link roadmap to user",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}

	return roadmap, nil
}

// GetOrGenerate returns the existing roadmap unchanged, generating one
// only on first access. No hidden regeneration.
func (s *RoadmapService) GetOrGenerate(ctx context.Context, userID string) (*model.Roadmap, error) {
	roadmap, err := s.roadmapRepo.FindByUser(ctx, userID)
	if err == nil {
		return roadmap, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	return s.GenerateAndSave(ctx, userID)
}
