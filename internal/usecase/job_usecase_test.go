package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"image"
	"image/png"
	"net/http"
	"strings"
	"testing"
	"time"

	"job-posting-backend/internal/domain"
	"job-posting-backend/internal/repository/memory"
	"job-posting-backend/internal/usecase"
	"job-posting-backend/pkg/apperror"
	"job-posting-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type jobFixture struct {
	repo  *memory.JobRepository
	areas *memory.PostAreaRepository
	uc    domain.JobUsecase
}

func newJobFixture(avatars domain.AvatarStore) *jobFixture {
	repo := memory.NewJobRepository()
	areas := seededAreas()
	return &jobFixture{
		repo:  repo,
		areas: areas,
		uc:    usecase.NewJobUsecase(repo, areas, validation.New(), avatars, nil),
	}
}

func (f *jobFixture) create(t *testing.T, in domain.CreateJobInput) *domain.Job {
	t.Helper()
	job, err := usecase.NewCreateJob(f.repo, usecase.NewCategoryResolver(f.areas), validation.New(), domain.DefaultCommissionTable, in).Execute(context.Background())
	require.NoError(t, err)
	return job
}

func TestJobUsecaseUpdate(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("Should regenerate the slug when the title changes", func(t *testing.T) {
		f := newJobFixture(nil)
		job := f.create(t, validInput(start, 20))

		updated, err := f.uc.UpdateJob(ctx, job.Slug, domain.JobPatch{Title: strPtr("  Plumbing help ")})
		require.NoError(t, err)
		assert.Equal(t, "Plumbing help", updated.Title)
		assert.Equal(t, "plumbing-help-"+job.ID.String(), updated.Slug)

		_, err = f.uc.GetJobDetails(ctx, job.Slug)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Should recompute the commission when the amount changes", func(t *testing.T) {
		f := newJobFixture(nil)
		job := f.create(t, validInput(start, 20))

		updated, err := f.uc.UpdateJob(ctx, job.Slug, domain.JobPatch{AmountToPay: intPtr(60)})
		require.NoError(t, err)
		assert.Equal(t, 20, updated.PaymentComission.Percentage)
		assert.Equal(t, job.Slug, updated.Slug)
	})

	t.Run("Should reject a patch that breaks the date order", func(t *testing.T) {
		f := newJobFixture(nil)
		job := f.create(t, validInput(start, 20))

		_, err := f.uc.UpdateJob(ctx, job.Slug, domain.JobPatch{DateEnd: timePtr(start.Add(-time.Minute))})
		assert.ErrorAs(t, err, new(*domain.InvalidDateOrderError))

		stored, _ := f.repo.Find(ctx, job.ID)
		assert.True(t, stored.DateEnd.Equal(*validInput(start, 20).DateEnd))
	})

	t.Run("Should re-infer the category when only the subcategory changes", func(t *testing.T) {
		f := newJobFixture(nil)
		in := validInput(start, 20)
		in.PostCategory = "two"
		job := f.create(t, in)

		updated, err := f.uc.UpdateJob(ctx, job.Slug, domain.JobPatch{PostSubcategory: strPtr("one-child")})
		require.NoError(t, err)
		assert.Equal(t, "one", updated.PostCategory.Name)
		assert.Equal(t, "one-child", updated.PostSubcategory.Name)
	})

	t.Run("Should return the job untouched for an empty patch", func(t *testing.T) {
		repo := new(MockJobRepo)
		f := newJobFixture(nil)
		job := f.create(t, validInput(start, 20))
		repo.On("FindBySlug", mock.Anything, job.Slug).Return(job, nil)

		uc := usecase.NewJobUsecase(repo, f.areas, validation.New(), nil, nil)
		same, err := uc.UpdateJob(ctx, job.Slug, domain.JobPatch{})
		require.NoError(t, err)
		assert.Equal(t, job.ID, same.ID)
		repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestJobUsecaseReadAndDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Should hide soft deleted jobs", func(t *testing.T) {
		f := newJobFixture(nil)
		job := f.create(t, validInput(now.Add(time.Hour), 20))

		require.NoError(t, f.uc.DeleteJob(ctx, job.Slug))

		_, err := f.uc.GetJobDetails(ctx, job.Slug)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, 1, f.repo.Len())
		assert.ErrorIs(t, f.uc.DeleteJob(ctx, job.Slug), domain.ErrNotFound)
	})

	t.Run("Should only expose jobs that have not ended as active", func(t *testing.T) {
		f := newJobFixture(nil)
		open := f.create(t, validInput(now.Add(-time.Hour), 80))
		closed := f.create(t, validInput(now.Add(-5*time.Hour), 20))

		jobs, total, err := f.uc.ListActiveJobs(ctx, domain.ActiveJobFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, open.ID, jobs[0].ID)

		_, err = f.uc.GetActiveJobDetails(ctx, closed.Slug)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		found, err := f.uc.GetJobDetails(ctx, closed.Slug)
		require.NoError(t, err)
		assert.Equal(t, closed.ID, found.ID)
	})

	t.Run("Should reject inconsistent active job filters", func(t *testing.T) {
		f := newJobFixture(nil)
		_, _, err := f.uc.ListActiveJobs(ctx, domain.ActiveJobFilter{MinPayment: intPtr(60), MaxPayment: intPtr(10)})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)

		_, _, err = f.uc.ListActiveJobs(ctx, domain.ActiveJobFilter{PaymentTier: "huge"})
		assert.ErrorAs(t, err, &appErr)
	})

	t.Run("Should default and cap page bounds", func(t *testing.T) {
		repo := new(MockJobRepo)
		repo.On("Fetch", mock.Anything, 10, 0).Return([]domain.Job{}, int64(0), nil)
		repo.On("Fetch", mock.Anything, 100, 100).Return([]domain.Job{}, int64(0), nil)
		uc := usecase.NewJobUsecase(repo, seededAreas(), validation.New(), nil, nil)

		_, _, err := uc.ListJobs(ctx, 0, 0)
		require.NoError(t, err)
		_, _, err = uc.ListJobs(ctx, 2, 500)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func pngAvatar(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 32))))
	return buf.Bytes()
}

func TestJobUsecaseUploadAvatar(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour)

	t.Run("Should fail when storage is not configured", func(t *testing.T) {
		f := newJobFixture(nil)
		job := f.create(t, validInput(start, 20))

		_, err := f.uc.UploadAvatar(ctx, job.Slug, pngAvatar(t))
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
	})

	t.Run("Should store a JPEG under the job id and record its URL", func(t *testing.T) {
		store := new(MockAvatarStore)
		f := newJobFixture(store)
		job := f.create(t, validInput(start, 20))
		key := "avatars/" + job.ID.String() + ".jpg"
		store.On("PutAvatar", mock.Anything, key, mock.Anything, "image/jpeg").Return("https://cdn.example.com/"+key, nil)

		updated, err := f.uc.UploadAvatar(ctx, job.Slug, pngAvatar(t))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/"+key, *updated.Avatar)
		store.AssertExpectations(t)
	})

	t.Run("Should reject files that are not images", func(t *testing.T) {
		store := new(MockAvatarStore)
		f := newJobFixture(store)
		job := f.create(t, validInput(start, 20))

		_, err := f.uc.UploadAvatar(ctx, job.Slug, []byte("%PDF-1.4 fake"))
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		store.AssertNotCalled(t, "PutAvatar", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should return storage failures", func(t *testing.T) {
		store := new(MockAvatarStore)
		store.On("PutAvatar", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket missing"))
		f := newJobFixture(store)
		job := f.create(t, validInput(start, 20))

		_, err := f.uc.UploadAvatar(ctx, job.Slug, pngAvatar(t))
		assert.ErrorContains(t, err, "bucket missing")
	})
}

func TestJobUsecaseExport(t *testing.T) {
	ctx := context.Background()
	f := newJobFixture(nil)
	in := validInput(time.Now().Add(time.Hour), 60)
	in.PostSubcategory = "one-child"
	job := f.create(t, in)

	t.Run("Should export a workbook with a header row and one row per job", func(t *testing.T) {
		data, name, err := f.uc.ExportJobs(ctx, "xlsx")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, ".xlsx"))

		wb, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer wb.Close()
		rows, err := wb.GetRows("Jobs")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "id", rows[0][0])
		assert.Equal(t, job.ID.String(), rows[1][0])
		assert.Contains(t, rows[1], "one-child")
		assert.Contains(t, rows[1], "20")
	})

	t.Run("Should export CSV", func(t *testing.T) {
		data, name, err := f.uc.ExportJobs(ctx, "csv")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, ".csv"))

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, job.Slug, records[1][17])
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, _, err := f.uc.ExportJobs(ctx, "pdf")
		assert.ErrorAs(t, err, new(*apperror.AppError))
	})
}

func TestPostAreaUsecase(t *testing.T) {
	tree, err := usecase.NewPostAreaUsecase(seededAreas()).ListCategoryTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "one", tree[0].Name)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Equal(t, "one-child", tree[0].Subcategories[0].Name)
	assert.Empty(t, tree[1].Subcategories)
	assert.NotNil(t, tree[1].Subcategories)
}
