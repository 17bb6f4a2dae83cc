package usecase_test

import (
	"context"
	"time"

	"job-posting-backend/internal/domain"
	"job-posting-backend/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockJobRepo lets tests inject storage failures.
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Find(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) FindBySlug(ctx context.Context, slug string) (*domain.Job, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Create(ctx context.Context, fields domain.JobFields) (*domain.Job, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) GetOrCreate(ctx context.Context, fields domain.JobFields) (*domain.Job, bool, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Job), args.Bool(1), args.Error(2)
}

func (m *MockJobRepo) Factory(fields domain.JobFields) *domain.Job {
	return domain.NewJob(fields)
}

func (m *MockJobRepo) Save(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) UpdateFields(ctx context.Context, job *domain.Job, fields map[string]any) (*domain.Job, error) {
	args := m.Called(ctx, job, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) FetchActive(ctx context.Context, filter domain.ActiveJobFilter, now time.Time, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, now, limit, offset)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) FetchAll(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Job), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJobCreated(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

type MockAvatarStore struct {
	mock.Mock
}

func (m *MockAvatarStore) PutAvatar(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// seededAreas holds categories "one" (with "one-child") and "two".
func seededAreas() *memory.PostAreaRepository {
	areas := memory.NewPostAreaRepository()
	one := areas.MustAdd("one", nil)
	areas.MustAdd("one-child", &one)
	areas.MustAdd("two", nil)
	return areas
}

// validInput is the reference submission used across tests.
func validInput(start time.Time, amount int) domain.CreateJobInput {
	return domain.CreateJobInput{
		Title:       "How to test a job creation",
		Email:       "john.smith@example.com",
		DateStart:   timePtr(start),
		DateEnd:     timePtr(start.Add(3 * time.Hour)),
		AmountToPay: intPtr(amount),
	}
}
