package usecase

import (
	"context"
	"fmt"
	"time"

	"job-posting-backend/internal/domain"
	"job-posting-backend/pkg/apperror"
	"job-posting-backend/pkg/audit"
	"job-posting-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type jobUsecase struct {
	rules   jobRules
	avatars domain.AvatarStore
	audit   *audit.Logger
	now     func() time.Time
}

// NewJobUsecase builds the read, update and delete side of jobs. avatars may
// be nil when object storage is not configured.
func NewJobUsecase(
	jobRepo domain.JobRepository,
	areaRepo domain.PostAreaRepository,
	validate *validator.Validate,
	avatars domain.AvatarStore,
	auditLog *audit.Logger,
) domain.JobUsecase {
	if auditLog == nil {
		auditLog = audit.New(zap.NewNop(), "job-posting-backend", "test")
	}
	return &jobUsecase{
		rules: jobRules{
			repo:     jobRepo,
			resolver: NewCategoryResolver(areaRepo),
			validate: validate,
			table:    domain.DefaultCommissionTable,
		},
		avatars: avatars,
		audit:   auditLog,
		now:     time.Now,
	}
}

func pageBounds(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return pageSize, (page - 1) * pageSize
}

func (u *jobUsecase) findLive(ctx context.Context, slug string) (*domain.Job, error) {
	job, err := u.rules.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if job == nil || job.Deleted {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, slug string) (*domain.Job, error) {
	return u.findLive(ctx, slug)
}

func (u *jobUsecase) ListJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	return u.rules.repo.Fetch(ctx, limit, offset)
}

// ListActiveJobs returns jobs whose end date has not passed yet.
func (u *jobUsecase) ListActiveJobs(ctx context.Context, filter domain.ActiveJobFilter) ([]domain.Job, int64, error) {
	if filter.MinPayment != nil && filter.MaxPayment != nil && *filter.MinPayment > *filter.MaxPayment {
		return nil, 0, apperror.BadRequest("min_payment cannot be greater than max_payment")
	}
	switch filter.PaymentTier {
	case "", domain.PaymentTierGreat, domain.PaymentTierNoGreat:
	default:
		return nil, 0, apperror.BadRequest(fmt.Sprintf("unknown payment_tier %q", filter.PaymentTier))
	}

	limit, offset := pageBounds(filter.Page, filter.PageSize)
	return u.rules.repo.FetchActive(ctx, filter, u.now(), limit, offset)
}

func (u *jobUsecase) GetActiveJobDetails(ctx context.Context, slug string) (*domain.Job, error) {
	job, err := u.findLive(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !job.IsActive(u.now()) {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

// UpdateJob applies a partial update. The merged job goes through the same
// rules as a new one; slug and commission follow title and amount.
func (u *jobUsecase) UpdateJob(ctx context.Context, slug string, patch domain.JobPatch) (*domain.Job, error) {
	current, err := u.findLive(ctx, slug)
	if err != nil {
		return nil, err
	}

	b := newJobBuilder(patch.Apply(domain.InputFromJob(current)), current)
	if err := u.rules.check(ctx, b); err != nil {
		return nil, err
	}
	next := b.job
	if next.Title != current.Title || next.Slug == "" {
		u.rules.assignSlug(next)
	}
	if current.AmountToPay == nil || *next.AmountToPay != *current.AmountToPay || next.PaymentComission == nil {
		u.rules.assignCommission(next)
	}

	changed := domain.ChangedFields(current, next)
	if len(changed) == 0 {
		return current, nil
	}
	updated, err := u.rules.repo.UpdateFields(ctx, current, changed)
	if err != nil {
		return nil, fmt.Errorf("update job %s: %w", current.ID, err)
	}
	u.audit.LogJobEvent(ctx, audit.EventJobUpdated, updated.ID.String(), updated.Slug)
	return updated, nil
}

// DeleteJob flags the job as deleted; the row is kept.
func (u *jobUsecase) DeleteJob(ctx context.Context, slug string) error {
	job, err := u.findLive(ctx, slug)
	if err != nil {
		return err
	}
	if _, err := u.rules.repo.UpdateFields(ctx, job, map[string]any{domain.FieldDeleted: true}); err != nil {
		return fmt.Errorf("delete job %s: %w", job.ID, err)
	}
	u.audit.LogJobEvent(ctx, audit.EventJobDeleted, job.ID.String(), job.Slug)
	return nil
}

// UploadAvatar validates and resizes the image, stores it and records its URL.
func (u *jobUsecase) UploadAvatar(ctx context.Context, slug string, data []byte) (*domain.Job, error) {
	if u.avatars == nil {
		return nil, apperror.ServiceUnavailable("Avatar storage is not configured")
	}
	job, err := u.findLive(ctx, slug)
	if err != nil {
		return nil, err
	}

	if _, err := storage.ValidateAvatar(data); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	processed, err := storage.ProcessAvatar(data)
	if err != nil {
		return nil, apperror.BadRequest("Avatar could not be decoded")
	}

	key := fmt.Sprintf("avatars/%s.jpg", job.ID)
	url, err := u.avatars.PutAvatar(ctx, key, processed, storage.AvatarContentType)
	if err != nil {
		return nil, err
	}

	updated, err := u.rules.repo.UpdateFields(ctx, job, map[string]any{domain.FieldAvatar: &url})
	if err != nil {
		return nil, fmt.Errorf("update avatar of job %s: %w", job.ID, err)
	}
	u.audit.LogJobEvent(ctx, audit.EventAvatarUploaded, updated.ID.String(), updated.Slug)
	return updated, nil
}
