package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"career_advisor/internal/common"
	"career_advisor/internal/domain/model"
	"career_advisor/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type CareerService struct {
	userRepo repository.UserRepository
	ai       CompletionClient
	rdb      *redis.Client // nil disables caching
	ttl      time.Duration
	log      *zap.Logger
}

func NewCareerService(userRepo repository.UserRepository, ai CompletionClient, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CareerService {
	return &CareerService{userRepo: userRepo, ai: ai, rdb: rdb, ttl: ttl, log: logger}
}

func careerCacheKey(userID string) string {
	return "career_recs:" + userID
}

// Recommend returns 3 suggested career paths for the user. Results are
// derived, regenerable data, so they may be cached in Redis with a TTL;
// cache failures degrade to a fresh model call.
func (s *CareerService) Recommend(ctx context.Context, userID string) ([]model.Career, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, careerCacheKey(userID)).Bytes()
		if err == nil {
			var careers []model.Career
			if jsonErr := json.Unmarshal(cached, &careers); jsonErr == nil {
				return careers, nil
			}
		} else if err != redis.Nil {
			s.log.Warn("career cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt := BuildCareerPrompt(user.Onboarding)

	raw, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		s.log.Error("career model call failed", zap.String("user_id", userID), zap.Error(err))
		return nil, common.ErrGenerationFailed
	}

	careers := s.parseCareers(userID, raw)

	if s.rdb != nil && len(careers) > 0 {
		if payload, jsonErr := json.Marshal(careers); jsonErr == nil {
			if err := s.rdb.Set(ctx, careerCacheKey(userID), payload, s.ttl).Err(); err != nil {
				s.log.Warn("career cache write failed", zap.String("user_id", userID), zap.Error(err))
			}
		}
	}

	return careers, nil
}

// parseCareers is deliberately lenient: malformed model output yields an
// empty list rather than a failed request.
func (s *CareerService) parseCareers(userID, raw string) []model.Career {
	cleaned := stripFences(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		s.log.Warn("career output had no JSON object",
			zap.String("user_id", userID), zap.String("raw_output", raw))
		return []model.Career{}
	}

	var envelope struct {
		Careers []model.Career `json:"careers"`
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &envelope); err != nil {
		s.log.Warn("career output parse failed",
			zap.String("user_id", userID), zap.Error(err), zap.String("raw_output", raw))
		return []model.Career{}
	}

	for i := range envelope.Careers {
		if envelope.Careers[i].ID != "" {
			continue
		}
		if envelope.Careers[i].Title != "" {
			envelope.Careers[i].ID = slug.Make(envelope.Careers[i].Title)
		} else {
			envelope.Careers[i].ID = uuid.NewString()
		}
	}
	if envelope.Careers == nil {
		envelope.Careers = []model.Career{}
	}
	return envelope.Careers
}
