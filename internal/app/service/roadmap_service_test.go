package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"career_advisor/internal/common"
	"career_advisor/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRoadmapFixture() (*fakeUserRepo, *fakeRoadmapRepo, *fakeAI, *RoadmapService, string) {
	users := newFakeUserRepo()
	roadmaps := newFakeRoadmapRepo()
	ai := &fakeAI{out: validRoadmapJSON}
	svc := NewRoadmapService(users, roadmaps, ai, zap.NewNop())

	userID := users.add(&model.User{
		FullName: "Ada",
		Email:    "ada@x.com",
		Onboarding: &model.Onboarding{
			Age: 25, CurrentRole: "Student", Experience: model.ExperienceBeginner,
			Skills: []string{"html"},
		},
	})
	return users, roadmaps, ai, svc, userID
}

func TestGenerateAndSave_Success(t *testing.T) {
	t.Parallel()
	users, roadmaps, _, svc, userID := newRoadmapFixture()

	roadmap, err := svc.GenerateAndSave(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, roadmap.Plan, 4)
	assert.False(t, roadmap.GeneratedAt.IsZero())

	// One document, and the back-reference was linked.
	assert.Len(t, roadmaps.docs, 1)
	u, err := users.FindByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, u.RoadmapID)
	assert.Equal(t, roadmap.ID, *u.RoadmapID)
}

func TestGenerateAndSave_UserNotFound(t *testing.T) {
	t.Parallel()
	_, _, _, svc, _ := newRoadmapFixture()

	_, err := svc.GenerateAndSave(context.Background(), "64b000000000000000000000")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGenerateAndSave_GatewayFailure(t *testing.T) {
	t.Parallel()
	_, roadmaps, ai, svc, userID := newRoadmapFixture()
	ai.err = errors.New("upstream exploded")

	_, err := svc.GenerateAndSave(context.Background(), userID)
	assert.ErrorIs(t, err, common.ErrGenerationFailed)
	// Surfaced message carries no upstream detail.
	assert.Equal(t, common.ErrGenerationFailed.Error(), err.Error())
	assert.Empty(t, roadmaps.docs)
}

func TestGenerateAndSave_UnparseableOutput(t *testing.T) {
	t.Parallel()
	_, roadmaps, ai, svc, userID := newRoadmapFixture()
	ai.out = "I am sorry, I cannot produce JSON today"

	_, err := svc.GenerateAndSave(context.Background(), userID)
	assert.ErrorIs(t, err, common.ErrGenerationFailed)
	assert.Empty(t, roadmaps.docs)
}

func TestGenerateAndSave_IrregularShapeIsAccepted(t *testing.T) {
	t.Parallel()
	_, _, ai, svc, userID := newRoadmapFixture()
	// Only two weeks: logged as a shape warning but not a failure.
	ai.out = `{"roadmap": {"week1": [{"task": "Learn Go", "status": "pending"}], "week2": []}}`

	roadmap, err := svc.GenerateAndSave(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, roadmap.Plan, 2)
}

func TestGenerateAndSave_BackRefFailureIsNonFatal(t *testing.T) {
	t.Parallel()
	users, _, _, svc, userID := newRoadmapFixture()
	users.setRoadmapErr = errors.New("write failed")

	roadmap, err := svc.GenerateAndSave(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, roadmap.Plan, 4)
	assert.Equal(t, 1, users.setRoadmapCalls)
}

func TestGenerateAndSave_RegenerationReplacesPlan(t *testing.T) {
	t.Parallel()
	_, roadmaps, ai, svc, userID := newRoadmapFixture()

	first, err := svc.GenerateAndSave(context.Background(), userID)
	require.NoError(t, err)

	ai.out = `{"roadmap": {"week1": [{"task": "Something new", "status": "pending"}]}}`
	second, err := svc.GenerateAndSave(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, roadmaps.docs, 1)
	assert.Equal(t, "Something new", second.Plan["week1"][0].Task)
}

func TestGenerateAndSave_ConcurrentCallsYieldOneDocument(t *testing.T) {
	t.Parallel()
	_, roadmaps, _, svc, userID := newRoadmapFixture()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GenerateAndSave(context.Background(), userID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, roadmaps.docs, 1)
}

func TestGetOrGenerate_NoHiddenRegeneration(t *testing.T) {
	t.Parallel()
	_, _, ai, svc, userID := newRoadmapFixture()

	first, err := svc.GetOrGenerate(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, ai.callCount())

	second, err := svc.GetOrGenerate(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
	assert.Equal(t, 1, ai.callCount())
}

func TestGetOrGenerate_StoreFailurePropagates(t *testing.T) {
	t.Parallel()
	_, roadmaps, ai, svc, userID := newRoadmapFixture()
	roadmaps.findErr = common.ErrStoreUnavailable

	_, err := svc.GetOrGenerate(context.Background(), userID)
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.Equal(t, 0, ai.callCount())
}
