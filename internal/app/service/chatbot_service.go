package service

import (
	"context"
	"fmt"
	"strings"

	"career_advisor/internal/common"
	"career_advisor/internal/domain/repository"

	"go.uber.org/zap"
)

type ChatbotService struct {
	userRepo repository.UserRepository
	ai       CompletionClient
	log      *zap.Logger
}

func NewChatbotService(userRepo repository.UserRepository, ai CompletionClient, logger *zap.Logger) *ChatbotService {
	return &ChatbotService{userRepo: userRepo, ai: ai, log: logger}
}

// Reply answers a chat message personalized with the user's onboarding
// profile. Identity always comes from the verified token, never from a
// client-supplied id.
func (s *ChatbotService) Reply(ctx context.Context, userID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is required: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	prompt := BuildChatPrompt(user.FullName, user.Onboarding, message)

	reply, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		s.log.Error("chatbot model call failed", zap.String("user_id", userID), zap.Error(err))
		return "", common.ErrGenerationFailed
	}
	return reply, nil
}
