// Package memory provides mutex guarded, map backed repositories for tests and
// local runs without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"job-posting-backend/internal/domain"

	"github.com/google/uuid"
)

type JobRepository struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*domain.Job
	now  func() time.Time
}

func NewJobRepository() *JobRepository {
	return &JobRepository{
		jobs: make(map[uuid.UUID]*domain.Job),
		now:  time.Now,
	}
}

// Len returns the number of stored jobs, deleted ones included.
func (r *JobRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

func (r *JobRepository) Find(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if j, ok := r.jobs[id]; ok {
		return j.Clone(), nil
	}
	return nil, nil
}

func (r *JobRepository) FindBySlug(ctx context.Context, slug string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, j := range r.jobs {
		if j.Slug == slug {
			return j.Clone(), nil
		}
	}
	return nil, nil
}

func (r *JobRepository) Factory(fields domain.JobFields) *domain.Job {
	return domain.NewJob(fields)
}

func (r *JobRepository) Create(ctx context.Context, fields domain.JobFields) (*domain.Job, error) {
	return r.Save(ctx, r.Factory(fields))
}

func (r *JobRepository) GetOrCreate(ctx context.Context, fields domain.JobFields) (*domain.Job, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if matchesIdentity(j, fields) {
			return j.Clone(), false, nil
		}
	}
	j := r.Factory(fields)
	r.store(j)
	return j.Clone(), true, nil
}

func matchesIdentity(j *domain.Job, f domain.JobFields) bool {
	if j.Title != f.Title || j.Email != f.Email {
		return false
	}
	if !j.DateStart.Equal(f.DateStart) || !j.DateEnd.Equal(f.DateEnd) {
		return false
	}
	if j.AmountToPay == nil || f.AmountToPay == nil {
		return j.AmountToPay == f.AmountToPay
	}
	return *j.AmountToPay == *f.AmountToPay
}

// Save inserts or replaces the job keyed by its ID.
func (r *JobRepository) Save(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := job.Clone()
	r.store(stored)
	return stored.Clone(), nil
}

// store expects r.mu to be held for writing.
func (r *JobRepository) store(j *domain.Job) {
	now := r.now()
	if prev, ok := r.jobs[j.ID]; ok {
		j.CreatedAt = prev.CreatedAt
	} else if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	j.UpdatedAt = now
	r.jobs[j.ID] = j
}

func (r *JobRepository) UpdateFields(ctx context.Context, job *domain.Job, fields map[string]any) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.jobs[job.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	next := current.Clone()
	for column, value := range fields {
		if err := domain.SetField(next, column, value); err != nil {
			return nil, err
		}
	}
	r.store(next)
	return next.Clone(), nil
}

func (r *JobRepository) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	return r.page(func(j *domain.Job) bool { return !j.Deleted }, limit, offset)
}

func (r *JobRepository) FetchActive(ctx context.Context, filter domain.ActiveJobFilter, now time.Time, limit, offset int) ([]domain.Job, int64, error) {
	return r.page(func(j *domain.Job) bool {
		return j.IsActive(now) && matchesFilter(j, filter)
	}, limit, offset)
}

func (r *JobRepository) FetchAll(ctx context.Context) ([]domain.Job, error) {
	jobs, _, err := r.page(func(*domain.Job) bool { return true }, 0, 0)
	return jobs, err
}

// page returns matching jobs newest first. A zero limit means no limit.
func (r *JobRepository) page(keep func(*domain.Job) bool, limit, offset int) ([]domain.Job, int64, error) {
	r.mu.RLock()
	matched := make([]domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if keep(j) {
			matched = append(matched, *j)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(a, b int) bool {
		if matched[a].CreatedAt.Equal(matched[b].CreatedAt) {
			return matched[a].ID.String() < matched[b].ID.String()
		}
		return matched[a].CreatedAt.After(matched[b].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return []domain.Job{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func matchesFilter(j *domain.Job, f domain.ActiveJobFilter) bool {
	if f.Title != "" && !containsFold(j.Title, f.Title) {
		return false
	}
	if f.Company != "" && !equalsOptional(j.Company, f.Company) {
		return false
	}
	if f.City != "" && !equalsOptional(j.City, f.City) {
		return false
	}
	if f.PostalCode != "" && !equalsOptional(j.PostalCode, f.PostalCode) {
		return false
	}
	if f.PostCategory != "" && (j.PostCategory == nil || !containsFold(j.PostCategory.Name, f.PostCategory)) {
		return false
	}
	if f.PostSubcategory != "" && (j.PostSubcategory == nil || !containsFold(j.PostSubcategory.Name, f.PostSubcategory)) {
		return false
	}

	amount := 0
	if j.AmountToPay != nil {
		amount = *j.AmountToPay
	}
	if f.MinPayment != nil && amount < *f.MinPayment {
		return false
	}
	if f.MaxPayment != nil && amount > *f.MaxPayment {
		return false
	}
	switch f.PaymentTier {
	case domain.PaymentTierGreat:
		return amount > domain.GreatPaymentThreshold
	case domain.PaymentTierNoGreat:
		return amount < domain.GreatPaymentThreshold
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func equalsOptional(s *string, want string) bool {
	return s != nil && *s == want
}
