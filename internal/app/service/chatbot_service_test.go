package service

import (
	"context"
	"errors"
	"testing"

	"career_advisor/internal/common"
	"career_advisor/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChatbotReply(t *testing.T) {
	t.Parallel()
	users := newFakeUserRepo()
	userID := users.add(&model.User{FullName: "Ada", Email: "ada@x.com"})
	svc := NewChatbotService(users, &fakeAI{out: "Learn Go next."}, zap.NewNop())

	reply, err := svc.Reply(context.Background(), userID, "what should I learn?")
	require.NoError(t, err)
	assert.Equal(t, "Learn Go next.", reply)
}

func TestChatbotReply_MissingMessage(t *testing.T) {
	t.Parallel()
	users := newFakeUserRepo()
	userID := users.add(&model.User{FullName: "Ada", Email: "ada@x.com"})
	ai := &fakeAI{out: "hi"}
	svc := NewChatbotService(users, ai, zap.NewNop())

	for _, message := range []string{"", "   ", "\t\n"} {
		_, err := svc.Reply(context.Background(), userID, message)
		assert.ErrorIs(t, err, common.ErrValidation)
	}
	assert.Zero(t, ai.callCount())
}

func TestChatbotReply_UserNotFound(t *testing.T) {
	t.Parallel()
	svc := NewChatbotService(newFakeUserRepo(), &fakeAI{out: "hi"}, zap.NewNop())

	_, err := svc.Reply(context.Background(), "64b000000000000000000000", "hello")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestChatbotReply_GatewayFailure(t *testing.T) {
	t.Parallel()
	users := newFakeUserRepo()
	userID := users.add(&model.User{FullName: "Ada", Email: "ada@x.com"})
	svc := NewChatbotService(users, &fakeAI{err: errors.New("down")}, zap.NewNop())

	_, err := svc.Reply(context.Background(), userID, "hello")
	assert.ErrorIs(t, err, common.ErrGenerationFailed)
}
