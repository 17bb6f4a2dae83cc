package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"job-posting-backend/internal/domain"
	"job-posting-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// jobSelect joins the category names so that jobs come back fully populated.
const jobSelect = `
	SELECT
		j.id, j.title, j.email, j.avatar, j.company, j.city, j.state, j.country, j.postal_code,
		c.id, c.name, c.parent_id,
		s.id, s.name, s.parent_id,
		j.payment_comission, j.date_start, j.date_end, j.address, j.phone, j.cellphone,
		j.description, j.terms, j.amount_to_pay, COALESCE(j.slug, ''), j.deleted,
		j.created_at, j.updated_at
	FROM jobs j
	LEFT JOIN post_areas c ON c.id = j.post_category_id
	LEFT JOIN post_areas s ON s.id = j.post_subcategory_id`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		job                  domain.Job
		catID, subID         *uuid.UUID
		catName, subName     *string
		catParent, subParent *uuid.UUID
		percentage           *int
	)
	err := row.Scan(
		&job.ID, &job.Title, &job.Email, &job.Avatar, &job.Company, &job.City, &job.State, &job.Country, &job.PostalCode,
		&catID, &catName, &catParent,
		&subID, &subName, &subParent,
		&percentage, &job.DateStart, &job.DateEnd, &job.Address, &job.Phone, &job.Cellphone,
		&job.Description, &job.Terms, &job.AmountToPay, &job.Slug, &job.Deleted,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.PostCategory = joinedArea(catID, catName, catParent)
	job.PostSubcategory = joinedArea(subID, subName, subParent)
	if job.PostSubcategory != nil && job.PostCategory != nil && job.PostSubcategory.BelongsTo(job.PostCategory) {
		job.PostSubcategory.Parent = job.PostCategory
	}
	if percentage != nil {
		job.PaymentComission = &domain.PaymentComission{Percentage: *percentage}
	}
	return &job, nil
}

func joinedArea(id *uuid.UUID, name *string, parent *uuid.UUID) *domain.PostArea {
	if id == nil {
		return nil
	}
	area := &domain.PostArea{ID: *id, ParentID: parent}
	if name != nil {
		area.Name = *name
	}
	return area
}

func (r *jobRepo) queryJobs(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) findOne(ctx context.Context, where string, arg any) (*domain.Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, jobSelect+" WHERE "+where, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) Find(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return r.findOne(ctx, "j.id = $1", id)
}

func (r *jobRepo) FindBySlug(ctx context.Context, slug string) (*domain.Job, error) {
	return r.findOne(ctx, "j.slug = $1", slug)
}

func (r *jobRepo) Factory(fields domain.JobFields) *domain.Job {
	return domain.NewJob(fields)
}

func (r *jobRepo) Create(ctx context.Context, fields domain.JobFields) (*domain.Job, error) {
	return r.Save(ctx, r.Factory(fields))
}

func (r *jobRepo) GetOrCreate(ctx context.Context, fields domain.JobFields) (*domain.Job, bool, error) {
	query := `SELECT id FROM jobs
              WHERE title = $1 AND email = $2 AND date_start = $3 AND date_end = $4 AND amount_to_pay = $5
              LIMIT 1`
	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, fields.Title, fields.Email, fields.DateStart, fields.DateEnd, fields.AmountToPay).Scan(&id)
	switch {
	case err == nil:
		job, err := r.Find(ctx, id)
		return job, false, err
	case errors.Is(err, pgx.ErrNoRows):
		job, err := r.Create(ctx, fields)
		return job, err == nil, err
	default:
		return nil, false, err
	}
}

// Save inserts the job or overwrites the row with the same id.
func (r *jobRepo) Save(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	query := `
		INSERT INTO jobs (
			id, title, email, avatar, company, city, state, country, postal_code,
			post_category_id, post_subcategory_id, payment_comission, date_start, date_end,
			address, phone, cellphone, description, terms, amount_to_pay, slug, deleted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NULLIF($21, ''), $22)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, email = EXCLUDED.email, avatar = EXCLUDED.avatar,
			company = EXCLUDED.company, city = EXCLUDED.city, state = EXCLUDED.state,
			country = EXCLUDED.country, postal_code = EXCLUDED.postal_code,
			post_category_id = EXCLUDED.post_category_id, post_subcategory_id = EXCLUDED.post_subcategory_id,
			payment_comission = EXCLUDED.payment_comission, date_start = EXCLUDED.date_start,
			date_end = EXCLUDED.date_end, address = EXCLUDED.address, phone = EXCLUDED.phone,
			cellphone = EXCLUDED.cellphone, description = EXCLUDED.description, terms = EXCLUDED.terms,
			amount_to_pay = EXCLUDED.amount_to_pay, slug = EXCLUDED.slug, deleted = EXCLUDED.deleted,
			updated_at = NOW()`

	_, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Email, job.Avatar, job.Company, job.City, job.State, job.Country, job.PostalCode,
		areaID(job.PostCategory), areaID(job.PostSubcategory), percentage(job.PaymentComission), job.DateStart, job.DateEnd,
		job.Address, job.Phone, job.Cellphone, job.Description, job.Terms, job.AmountToPay, job.Slug, job.Deleted,
	)
	if err != nil {
		return nil, translateWriteError(err)
	}
	return r.mustFind(ctx, job.ID)
}

func (r *jobRepo) mustFind(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperror.Conflict("A job with this slug already exists")
	}
	return err
}

func areaID(a *domain.PostArea) *uuid.UUID {
	if a == nil {
		return nil
	}
	id := a.ID
	return &id
}

func percentage(c *domain.PaymentComission) *int {
	if c == nil {
		return nil
	}
	p := c.Percentage
	return &p
}

// columnArg maps a domain column to its SQL column and argument, reading the
// value back from j so that it has already been type checked by SetField.
func columnArg(j *domain.Job, column string) (string, any) {
	switch column {
	case domain.FieldPostCategory:
		return "post_category_id", areaID(j.PostCategory)
	case domain.FieldPostSubcategory:
		return "post_subcategory_id", areaID(j.PostSubcategory)
	case domain.FieldPaymentComission:
		return "payment_comission", percentage(j.PaymentComission)
	case domain.FieldTitle:
		return column, j.Title
	case domain.FieldEmail:
		return column, j.Email
	case domain.FieldAvatar:
		return column, j.Avatar
	case domain.FieldCompany:
		return column, j.Company
	case domain.FieldCity:
		return column, j.City
	case domain.FieldState:
		return column, j.State
	case domain.FieldCountry:
		return column, j.Country
	case domain.FieldPostalCode:
		return column, j.PostalCode
	case domain.FieldDateStart:
		return column, j.DateStart
	case domain.FieldDateEnd:
		return column, j.DateEnd
	case domain.FieldAddress:
		return column, j.Address
	case domain.FieldPhone:
		return column, j.Phone
	case domain.FieldCellphone:
		return column, j.Cellphone
	case domain.FieldDescription:
		return column, j.Description
	case domain.FieldTerms:
		return column, j.Terms
	case domain.FieldAmountToPay:
		return column, j.AmountToPay
	case domain.FieldSlug:
		return column, j.Slug
	default:
		return domain.FieldDeleted, j.Deleted
	}
}

// UpdateFields writes only the given columns of job.
func (r *jobRepo) UpdateFields(ctx context.Context, job *domain.Job, fields map[string]any) (*domain.Job, error) {
	if len(fields) == 0 {
		return r.mustFind(ctx, job.ID)
	}

	next := job.Clone()
	columns := make([]string, 0, len(fields))
	for column, value := range fields {
		if err := domain.SetField(next, column, value); err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	sets := make([]string, 0, len(columns)+1)
	args := make([]any, 0, len(columns)+1)
	for _, column := range columns {
		sqlColumn, arg := columnArg(next, column)
		args = append(args, arg)
		sets = append(sets, fmt.Sprintf("%s = $%d", sqlColumn, len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, job.ID)

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, translateWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.mustFind(ctx, job.ID)
}

func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	jobs, err := r.queryJobs(ctx, jobSelect+` WHERE j.deleted = FALSE ORDER BY j.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE deleted = FALSE`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// activeWhere renders the filter as a WHERE clause over jobSelect's aliases.
func activeWhere(filter domain.ActiveJobFilter, now time.Time) (string, []any) {
	conds := []string{"j.deleted = FALSE"}
	args := []any{}
	add := func(format string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	add("j.date_end > $%d", now)
	if filter.Title != "" {
		add("j.title ILIKE '%%' || $%d || '%%'", filter.Title)
	}
	if filter.Company != "" {
		add("j.company = $%d", filter.Company)
	}
	if filter.City != "" {
		add("j.city = $%d", filter.City)
	}
	if filter.PostalCode != "" {
		add("j.postal_code = $%d", filter.PostalCode)
	}
	if filter.PostCategory != "" {
		add("c.name ILIKE '%%' || $%d || '%%'", filter.PostCategory)
	}
	if filter.PostSubcategory != "" {
		add("s.name ILIKE '%%' || $%d || '%%'", filter.PostSubcategory)
	}
	if filter.MinPayment != nil {
		add("j.amount_to_pay >= $%d", *filter.MinPayment)
	}
	if filter.MaxPayment != nil {
		add("j.amount_to_pay <= $%d", *filter.MaxPayment)
	}
	switch filter.PaymentTier {
	case domain.PaymentTierGreat:
		add("j.amount_to_pay > $%d", domain.GreatPaymentThreshold)
	case domain.PaymentTierNoGreat:
		add("j.amount_to_pay < $%d", domain.GreatPaymentThreshold)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *jobRepo) FetchActive(ctx context.Context, filter domain.ActiveJobFilter, now time.Time, limit, offset int) ([]domain.Job, int64, error) {
	where, args := activeWhere(filter, now)

	query := fmt.Sprintf("%s%s ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d", jobSelect, where, len(args)+1, len(args)+2)
	jobs, err := r.queryJobs(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM jobs j
		LEFT JOIN post_areas c ON c.id = j.post_category_id
		LEFT JOIN post_areas s ON s.id = j.post_subcategory_id` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) FetchAll(ctx context.Context) ([]domain.Job, error) {
	return r.queryJobs(ctx, jobSelect+` ORDER BY j.created_at ASC`)
}
