package usecase

import (
	"context"
	"fmt"

	"job-posting-backend/internal/domain"
	"job-posting-backend/pkg/slug"
	"job-posting-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// jobRules holds the collaborators shared by job creation and job updates.
type jobRules struct {
	repo     domain.JobRepository
	resolver *CategoryResolver
	validate *validator.Validate
	table    domain.CommissionTable
}

// jobBuilder accumulates the state of one job through the check and finalize
// phases. base is set when an existing job is being revised.
type jobBuilder struct {
	input domain.CreateJobInput
	base  *domain.Job
	job   *domain.Job
}

func newJobBuilder(input domain.CreateJobInput, base *domain.Job) *jobBuilder {
	return &jobBuilder{input: input.Normalize(), base: base}
}

func (b *jobBuilder) fields(category, subcategory *domain.PostArea) domain.JobFields {
	in := b.input
	f := domain.JobFields{
		Title:           in.Title,
		Email:           in.Email,
		Avatar:          in.Avatar,
		Company:         in.Company,
		City:            in.City,
		State:           in.State,
		Country:         in.Country,
		PostalCode:      in.PostalCode,
		PostCategory:    category,
		PostSubcategory: subcategory,
		Address:         in.Address,
		Phone:           in.Phone,
		Cellphone:       in.Cellphone,
		Description:     in.Description,
		Terms:           in.Terms,
		AmountToPay:     in.AmountToPay,
		Deleted:         in.Deleted,
	}
	if in.DateStart != nil {
		f.DateStart = *in.DateStart
	}
	if in.DateEnd != nil {
		f.DateEnd = *in.DateEnd
	}
	return f
}

// check runs the business rules in order and leaves the transient job on b.
// The transient job is built once, so its identifier is stable across calls.
func (r *jobRules) check(ctx context.Context, b *jobBuilder) error {
	in := b.input
	if in.DateStart != nil && in.DateEnd != nil && !in.DateEnd.After(*in.DateStart) {
		return &domain.InvalidDateOrderError{}
	}

	category, subcategory, err := r.resolver.Resolve(ctx, in.PostCategory, in.PostSubcategory)
	if err != nil {
		return err
	}

	fields := b.fields(category, subcategory)
	switch {
	case b.job != nil:
		fields.ApplyTo(b.job)
	case b.base != nil:
		b.job = b.base.Clone()
		fields.ApplyTo(b.job)
	default:
		b.job = r.repo.Factory(fields)
	}

	if err := r.validate.Struct(b.job); err != nil {
		if fieldErrs, ok := validation.FieldErrors(err); ok {
			return &domain.ValidationError{Fields: fieldErrs}
		}
		return fmt.Errorf("validate job: %w", err)
	}
	return nil
}

// finalize derives the system owned attributes of a checked job.
func (r *jobRules) finalize(job *domain.Job) {
	r.assignSlug(job)
	r.assignCommission(job)
}

func (r *jobRules) assignSlug(job *domain.Job) {
	job.Slug = slug.Generate(job.ID.String(), job.Title)
}

// assignCommission expects AmountToPay to be set, which validation enforces.
func (r *jobRules) assignCommission(job *domain.Job) {
	rate := r.table.RateFor(*job.AmountToPay)
	job.PaymentComission = &rate
}

// CreateJob turns one submission into a persisted job. A CreateJob value is
// meant for a single submission and is not safe for concurrent use.
type CreateJob struct {
	rules   jobRules
	builder *jobBuilder
}

func NewCreateJob(
	repo domain.JobRepository,
	resolver *CategoryResolver,
	validate *validator.Validate,
	table domain.CommissionTable,
	input domain.CreateJobInput,
) *CreateJob {
	return &CreateJob{
		rules: jobRules{
			repo:     repo,
			resolver: resolver,
			validate: validate,
			table:    table,
		},
		builder: newJobBuilder(input, nil),
	}
}

// Input returns the normalized submission.
func (uc *CreateJob) Input() domain.CreateJobInput {
	return uc.builder.input
}

func (uc *CreateJob) Repository() domain.JobRepository {
	return uc.rules.repo
}

// IsValid reports whether the submission passes every rule. The returned error
// is the rule that failed, or an infrastructure error from category lookup.
func (uc *CreateJob) IsValid(ctx context.Context) (bool, error) {
	if err := uc.rules.check(ctx, uc.builder); err != nil {
		return false, err
	}
	return true, nil
}

// Execute validates, derives slug and commission, and saves the job. Nothing is
// persisted when an error is returned.
func (uc *CreateJob) Execute(ctx context.Context) (*domain.Job, error) {
	if err := uc.rules.check(ctx, uc.builder); err != nil {
		return nil, err
	}

	job := uc.builder.job
	uc.rules.finalize(job)

	saved, err := uc.rules.repo.Save(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}
	return saved, nil
}
