package service

import (
	"context"
	"sync"
	"time"

	"career_advisor/internal/common"
	"career_advisor/internal/domain/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- in-memory fakes for the store and the AI gateway ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // key: id hex

	createErr     error
	findErr       error
	setRoadmapErr error

	setRoadmapCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return common.ErrDuplicateUser
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	f.users[user.ID.Hex()] = &cp
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := f.findByEmail(email)
	if err != nil {
		return nil, err
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmailWithPassword(ctx context.Context, email string) (*model.User, error) {
	u, err := f.findByEmail(email)
	if err != nil {
		return nil, err
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) findByEmail(email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp, nil
}

func (f *fakeUserRepo) UpdateOnboarding(ctx context.Context, id string, ob *model.Onboarding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Onboarding = ob
	return nil
}

func (f *fakeUserRepo) SetRoadmapRef(ctx context.Context, id string, roadmapID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setRoadmapCalls++
	if f.setRoadmapErr != nil {
		return f.setRoadmapErr
	}
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.RoadmapID = &roadmapID
	return nil
}

func (f *fakeUserRepo) add(u *model.User) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.ID.Hex()] = u
	return u.ID.Hex()
}

type fakeRoadmapRepo struct {
	mu   sync.Mutex
	docs map[string]*model.Roadmap // key: user id hex

	findErr   error
	upsertErr error
}

func newFakeRoadmapRepo() *fakeRoadmapRepo {
	return &fakeRoadmapRepo{docs: map[string]*model.Roadmap{}}
}

func (f *fakeRoadmapRepo) FindByUser(ctx context.Context, userID string) (*model.Roadmap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	doc, ok := f.docs[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

func (f *fakeRoadmapRepo) Upsert(ctx context.Context, userID string, plan model.Plan, generatedAt time.Time) (*model.Roadmap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, common.ErrNotFound
	}
	doc, ok := f.docs[userID]
	if !ok {
		doc = &model.Roadmap{ID: primitive.NewObjectID(), UserID: oid}
		f.docs[userID] = doc
	}
	doc.Plan = plan
	doc.GeneratedAt = generatedAt
	cp := *doc
	return &cp, nil
}

type fakeAI struct {
	mu    sync.Mutex
	calls int
	out   string
	err   error
}

func (f *fakeAI) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func (f *fakeAI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

const validRoadmapJSON = `{
  "roadmap": {
    "week1": [
      {"task": "Learn basics of JavaScript", "status": "pending"},
      {"task": "Practice 5 coding problems", "status": "pending"},
      {"task": "Read about DOM manipulation", "status": "pending"}
    ],
    "week2": [
      {"task": "Build a small project", "status": "pending"},
      {"task": "Learn Git basics", "status": "pending"},
      {"task": "Solve 5 more coding problems", "status": "pending"}
    ],
    "week3": [
      {"task": "Learn Node.js fundamentals", "status": "pending"},
      {"task": "Build a simple API", "status": "pending"},
      {"task": "Deploy the project", "status": "pending"}
    ],
    "week4": [
      {"task": "Contribute to open-source", "status": "pending"},
      {"task": "Create portfolio project", "status": "pending"},
      {"task": "Prepare for interviews", "status": "pending"}
    ]
  }
}`
