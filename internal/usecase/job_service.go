package usecase

import (
	"context"
	"errors"

	"job-posting-backend/internal/domain"
	"job-posting-backend/pkg/audit"
	"job-posting-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CreateJobService converts business rule failures of CreateJob into values
// for callers that do not want to inspect error types.
type CreateJobService struct {
	repo      domain.JobRepository
	resolver  *CategoryResolver
	validate  *validator.Validate
	table     domain.CommissionTable
	publisher domain.JobEventPublisher
	audit     *audit.Logger
}

// NewCreateJobService wires the service. publisher and auditLog may be nil.
func NewCreateJobService(
	repo domain.JobRepository,
	areas domain.PostAreaRepository,
	validate *validator.Validate,
	publisher domain.JobEventPublisher,
	auditLog *audit.Logger,
) *CreateJobService {
	if auditLog == nil {
		auditLog = audit.New(zap.NewNop(), "job-posting-backend", "test")
	}
	return &CreateJobService{
		repo:      repo,
		resolver:  NewCategoryResolver(areas),
		validate:  validate,
		table:     domain.DefaultCommissionTable,
		publisher: publisher,
		audit:     auditLog,
	}
}

// CreateJob returns ("", {"data": job}, nil) on success. A rejected submission
// yields its message and an empty map, or {"errors": fields} for schema
// failures. Any other failure is returned as err.
func (s *CreateJobService) CreateJob(ctx context.Context, input domain.CreateJobInput) (string, map[string]any, error) {
	uc := NewCreateJob(s.repo, s.resolver, s.validate, s.table, input)

	job, err := uc.Execute(ctx)
	if err != nil {
		if !domain.IsBusinessError(err) {
			return "", nil, err
		}
		s.audit.LogJobRejected(ctx, uc.Input().Email, err.Error())

		var validErr *domain.ValidationError
		if errors.As(err, &validErr) {
			return err.Error(), map[string]any{"errors": validErr.Fields}, nil
		}
		return err.Error(), map[string]any{}, nil
	}

	if s.publisher != nil {
		if pubErr := s.publisher.PublishJobCreated(ctx, job); pubErr != nil {
			logger.Log.Warn("Failed to publish job created event", "job_id", job.ID, "error", pubErr)
		}
	}
	s.audit.LogJobEvent(ctx, audit.EventJobCreated, job.ID.String(), job.Slug)

	return "", map[string]any{"data": job}, nil
}
