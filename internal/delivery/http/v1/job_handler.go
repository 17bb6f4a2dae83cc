package v1

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"job-posting-backend/internal/delivery/http/response"
	"job-posting-backend/internal/domain"
	"job-posting-backend/pkg/apperror"
	"job-posting-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

// JobCreator is satisfied by usecase.CreateJobService.
type JobCreator interface {
	CreateJob(ctx context.Context, input domain.CreateJobInput) (string, map[string]any, error)
}

type JobHandler struct {
	jobUC   domain.JobUsecase
	creator JobCreator
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase, creator JobCreator) {
	handler := &JobHandler{jobUC: jobUC, creator: creator}

	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:slug", handler.GetDetails)
	}

	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PATCH("/:slug", handler.Update)
		protectedJobs.DELETE("/:slug", handler.Delete)
		protectedJobs.POST("/:slug/avatar", handler.UploadAvatar)
	}

	protected.GET("/exports/jobs", handler.Export)
}

// CreateJobRequest is the body of POST /jobs. Slug and commission are
// always computed by the server; keys with those names are ignored.
type CreateJobRequest struct {
	Title           string     `json:"title"`
	Email           string     `json:"email"`
	DateStart       *time.Time `json:"date_start"`
	DateEnd         *time.Time `json:"date_end"`
	AmountToPay     *int       `json:"amount_to_pay"`
	Avatar          *string    `json:"avatar"`
	Company         *string    `json:"company"`
	City            *string    `json:"city"`
	State           *string    `json:"state"`
	Country         *string    `json:"country"`
	PostalCode      *string    `json:"postal_code"`
	PostCategory    string     `json:"post_category"`
	PostSubcategory string     `json:"post_subcategory"`
	Address         *string    `json:"address"`
	Phone           *string    `json:"phone"`
	Cellphone       *string    `json:"cellphone"`
	Description     *string    `json:"description"`
	Terms           *string    `json:"terms"`
}

func (r CreateJobRequest) toInput() domain.CreateJobInput {
	return domain.CreateJobInput{
		Title:           r.Title,
		Email:           r.Email,
		DateStart:       r.DateStart,
		DateEnd:         r.DateEnd,
		AmountToPay:     r.AmountToPay,
		Avatar:          r.Avatar,
		Company:         r.Company,
		City:            r.City,
		State:           r.State,
		Country:         r.Country,
		PostalCode:      r.PostalCode,
		PostCategory:    r.PostCategory,
		PostSubcategory: r.PostSubcategory,
		Address:         r.Address,
		Phone:           r.Phone,
		Cellphone:       r.Cellphone,
		Description:     r.Description,
		Terms:           r.Terms,
	}
}

// UpdateJobRequest is the body of PATCH /jobs/{slug}. Omitted keys keep their
// current value.
type UpdateJobRequest struct {
	Title           *string    `json:"title"`
	Email           *string    `json:"email"`
	DateStart       *time.Time `json:"date_start"`
	DateEnd         *time.Time `json:"date_end"`
	AmountToPay     *int       `json:"amount_to_pay"`
	Company         *string    `json:"company"`
	City            *string    `json:"city"`
	State           *string    `json:"state"`
	Country         *string    `json:"country"`
	PostalCode      *string    `json:"postal_code"`
	PostCategory    *string    `json:"post_category"`
	PostSubcategory *string    `json:"post_subcategory"`
	Address         *string    `json:"address"`
	Phone           *string    `json:"phone"`
	Cellphone       *string    `json:"cellphone"`
	Description     *string    `json:"description"`
	Terms           *string    `json:"terms"`
}

func (r UpdateJobRequest) toPatch() domain.JobPatch {
	return domain.JobPatch{
		Title:           r.Title,
		Email:           r.Email,
		DateStart:       r.DateStart,
		DateEnd:         r.DateEnd,
		AmountToPay:     r.AmountToPay,
		Company:         r.Company,
		City:            r.City,
		State:           r.State,
		Country:         r.Country,
		PostalCode:      r.PostalCode,
		PostCategory:    r.PostCategory,
		PostSubcategory: r.PostSubcategory,
		Address:         r.Address,
		Phone:           r.Phone,
		Cellphone:       r.Cellphone,
		Description:     r.Description,
		Terms:           r.Terms,
	}
}

// CreateJob godoc
// @Summary      Create a new job
// @Description  Validate and store a job posting. Slug and commission are derived by the server.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	msg, result, err := h.creator.CreateJob(c.Request.Context(), req.toInput())
	if err != nil {
		c.Error(err)
		return
	}
	if msg != "" {
		response.Error(c, http.StatusBadRequest, msg, result["errors"])
		return
	}

	response.Success(c, http.StatusCreated, "Job created", result["data"])
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Get every non deleted job, newest first
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", gin.H{
		"jobs":      jobs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetJobDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        slug  path      string  true  "Job slug"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{slug} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Partially update a job. The slug follows the title and the commission follows the amount.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        slug  path      string            true  "Job slug"
// @Param        job   body      UpdateJobRequest  true  "Fields to change"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{slug} [patch]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), c.Param("slug"), req.toPatch())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Soft delete a job posting
// @Tags         jobs
// @Produce      json
// @Param        slug  path      string  true  "Job slug"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{slug} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), c.Param("slug")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}

// UploadAvatar godoc
// @Summary      Upload a job avatar
// @Description  JPEG, PNG or GIF up to 5MB. The image is resized and stored as JPEG.
// @Tags         jobs
// @Accept       multipart/form-data
// @Produce      json
// @Param        slug    path      string  true  "Job slug"
// @Param        avatar  formData  file    true  "Avatar image"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      503     {object}  response.Response
// @Router       /jobs/{slug}/avatar [post]
// @Security     BearerAuth
func (h *JobHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		c.Error(apperror.BadRequest("avatar file is required"))
		return
	}
	if file.Size > storage.AvatarMaxBytes {
		c.Error(apperror.BadRequest("Avatar exceeds the 5MB limit"))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Failed to read avatar"))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, storage.AvatarMaxBytes+1))
	if err != nil {
		c.Error(apperror.BadRequest("Failed to read avatar"))
		return
	}

	job, err := h.jobUC.UploadAvatar(c.Request.Context(), c.Param("slug"), data)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Avatar uploaded", job)
}

var exportContentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv; charset=utf-8",
}

// ExportJobs godoc
// @Summary      Export jobs
// @Description  Download every job as an Excel workbook or CSV file
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200
// @Failure      400  {object}  response.Response
// @Router       /exports/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) Export(c *gin.Context) {
	data, filename, err := h.jobUC.ExportJobs(c.Request.Context(), c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, exportContentTypes[filepath.Ext(filename)], data)
}
