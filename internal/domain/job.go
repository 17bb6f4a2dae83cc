package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Column names accepted by JobRepository.UpdateFields.
const (
	FieldTitle            = "title"
	FieldEmail            = "email"
	FieldAvatar           = "avatar"
	FieldCompany          = "company"
	FieldCity             = "city"
	FieldState            = "state"
	FieldCountry          = "country"
	FieldPostalCode       = "postal_code"
	FieldPostCategory     = "post_category"
	FieldPostSubcategory  = "post_subcategory"
	FieldPaymentComission = "payment_comission"
	FieldDateStart        = "date_start"
	FieldDateEnd          = "date_end"
	FieldAddress          = "address"
	FieldPhone            = "phone"
	FieldCellphone        = "cellphone"
	FieldDescription      = "description"
	FieldTerms            = "terms"
	FieldAmountToPay      = "amount_to_pay"
	FieldSlug             = "slug"
	FieldDeleted          = "deleted"
)

// Job is a posted task with payment terms and a validity window.
type Job struct {
	ID               uuid.UUID         `json:"id"`
	Title            string            `json:"title" validate:"required,max=128"`
	Email            string            `json:"email" validate:"required,email"`
	Avatar           *string           `json:"avatar"`
	Company          *string           `json:"company"`
	City             *string           `json:"city"`
	State            *string           `json:"state"`
	Country          *string           `json:"country"`
	PostalCode       *string           `json:"postal_code"`
	PostCategory     *PostArea         `json:"post_category" validate:"-"`
	PostSubcategory  *PostArea         `json:"post_subcategory" validate:"-"`
	PaymentComission *PaymentComission `json:"payment_comission" validate:"-"`
	DateStart        time.Time         `json:"date_start" validate:"required"`
	DateEnd          time.Time         `json:"date_end" validate:"required"`
	Address          *string           `json:"address" validate:"omitempty,max=128"`
	Phone            *string           `json:"phone" validate:"omitempty,max=32,valid_phone"`
	Cellphone        *string           `json:"cellphone" validate:"omitempty,max=32,valid_phone"`
	Description      *string           `json:"description" validate:"omitempty,max=512"`
	Terms            *string           `json:"terms" validate:"omitempty,max=512"`
	AmountToPay      *int              `json:"amount_to_pay" validate:"required,min=0,max=32767"`
	Slug             string            `json:"slug"`
	Deleted          bool              `json:"deleted"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// IsActive reports whether the job can still be applied for at now.
func (j *Job) IsActive(now time.Time) bool {
	return !j.Deleted && j.DateEnd.After(now)
}

// Clone returns a shallow copy. Pointer fields are shared, they are never
// mutated in place.
func (j *Job) Clone() *Job {
	c := *j
	return &c
}

// JobFields holds the user settable attributes of a Job. Slug and commission
// are intentionally absent: they are always derived by the system.
type JobFields struct {
	Title           string
	Email           string
	Avatar          *string
	Company         *string
	City            *string
	State           *string
	Country         *string
	PostalCode      *string
	PostCategory    *PostArea
	PostSubcategory *PostArea
	DateStart       time.Time
	DateEnd         time.Time
	Address         *string
	Phone           *string
	Cellphone       *string
	Description     *string
	Terms           *string
	AmountToPay     *int
	Deleted         bool
}

// ApplyTo overwrites the user settable attributes of j.
func (f JobFields) ApplyTo(j *Job) {
	j.Title = f.Title
	j.Email = f.Email
	j.Avatar = f.Avatar
	j.Company = f.Company
	j.City = f.City
	j.State = f.State
	j.Country = f.Country
	j.PostalCode = f.PostalCode
	j.PostCategory = f.PostCategory
	j.PostSubcategory = f.PostSubcategory
	j.DateStart = f.DateStart
	j.DateEnd = f.DateEnd
	j.Address = f.Address
	j.Phone = f.Phone
	j.Cellphone = f.Cellphone
	j.Description = f.Description
	j.Terms = f.Terms
	j.AmountToPay = f.AmountToPay
	j.Deleted = f.Deleted
}

// NewJob builds an unpersisted Job with a fresh identifier.
func NewJob(f JobFields) *Job {
	j := &Job{ID: uuid.New()}
	f.ApplyTo(j)
	return j
}

// ActiveJobFilter narrows the ActiveJob listing.
type ActiveJobFilter struct {
	Title           string
	Company         string
	City            string
	PostalCode      string
	PostCategory    string
	PostSubcategory string
	MinPayment      *int
	MaxPayment      *int
	PaymentTier     PaymentTier
	Page            int
	PageSize        int
}

type JobRepository interface {
	// Find returns (nil, nil) when no job has the given id.
	Find(ctx context.Context, id uuid.UUID) (*Job, error)
	// FindBySlug returns (nil, nil) when no job has the given slug.
	FindBySlug(ctx context.Context, slug string) (*Job, error)
	Create(ctx context.Context, fields JobFields) (*Job, error)
	// GetOrCreate looks a job up by title, email, dates and amount, creating
	// it when missing. The bool reports whether a record was created.
	GetOrCreate(ctx context.Context, fields JobFields) (*Job, bool, error)
	// Factory builds an in-memory instance without persisting it.
	Factory(fields JobFields) *Job
	Save(ctx context.Context, job *Job) (*Job, error)
	UpdateFields(ctx context.Context, job *Job, fields map[string]any) (*Job, error)
	Fetch(ctx context.Context, limit, offset int) ([]Job, int64, error)
	FetchActive(ctx context.Context, filter ActiveJobFilter, now time.Time, limit, offset int) ([]Job, int64, error)
	FetchAll(ctx context.Context) ([]Job, error)
}

// JobEventPublisher notifies downstream consumers about job lifecycle events.
type JobEventPublisher interface {
	PublishJobCreated(ctx context.Context, job *Job) error
}

// AvatarStore persists processed avatar images and returns their public URL.
type AvatarStore interface {
	PutAvatar(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type JobUsecase interface {
	GetJobDetails(ctx context.Context, slug string) (*Job, error)
	ListJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
	ListActiveJobs(ctx context.Context, filter ActiveJobFilter) ([]Job, int64, error)
	GetActiveJobDetails(ctx context.Context, slug string) (*Job, error)
	UpdateJob(ctx context.Context, slug string, patch JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, slug string) error
	UploadAvatar(ctx context.Context, slug string, data []byte) (*Job, error)
	// ExportJobs renders every job as "csv" or "xlsx" and returns the file name.
	ExportJobs(ctx context.Context, format string) ([]byte, string, error)
}
