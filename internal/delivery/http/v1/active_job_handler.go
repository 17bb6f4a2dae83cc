package v1

import (
	"net/http"
	"strconv"

	"job-posting-backend/internal/delivery/http/response"
	"job-posting-backend/internal/domain"
	"job-posting-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ActiveJobHandler serves jobs whose end date has not passed.
type ActiveJobHandler struct {
	jobUC domain.JobUsecase
}

func NewActiveJobHandler(public *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &ActiveJobHandler{jobUC: jobUC}

	activeJobs := public.Group("/activejobs")
	{
		activeJobs.GET("", handler.List)
		activeJobs.GET("/:slug", handler.GetDetails)
	}
}

func optionalInt(c *gin.Context, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.BadRequest(key + " must be an integer")
	}
	return &v, nil
}

// ListActiveJobs godoc
// @Summary      List active jobs
// @Description  Jobs that are not deleted and whose end date is in the future
// @Tags         activejobs
// @Produce      json
// @Param        page              query     int     false  "Page number"
// @Param        page_size         query     int     false  "Page size"
// @Param        title             query     string  false  "Title contains"
// @Param        company           query     string  false  "Company"
// @Param        city              query     string  false  "City"
// @Param        postal_code       query     string  false  "Postal code"
// @Param        post_category     query     string  false  "Category name"
// @Param        post_subcategory  query     string  false  "Subcategory name"
// @Param        min_payment       query     int     false  "Minimum amount to pay"
// @Param        max_payment       query     int     false  "Maximum amount to pay"
// @Param        payment_tier      query     string  false  "great_payed or no_great_payed"
// @Success      200               {object}  response.Response
// @Failure      400               {object}  response.Response
// @Router       /activejobs [get]
func (h *ActiveJobHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	minPayment, err := optionalInt(c, "min_payment")
	if err != nil {
		c.Error(err)
		return
	}
	maxPayment, err := optionalInt(c, "max_payment")
	if err != nil {
		c.Error(err)
		return
	}

	filter := domain.ActiveJobFilter{
		Title:           c.Query("title"),
		Company:         c.Query("company"),
		City:            c.Query("city"),
		PostalCode:      c.Query("postal_code"),
		PostCategory:    c.Query("post_category"),
		PostSubcategory: c.Query("post_subcategory"),
		MinPayment:      minPayment,
		MaxPayment:      maxPayment,
		PaymentTier:     domain.PaymentTier(c.Query("payment_tier")),
		Page:            page,
		PageSize:        pageSize,
	}

	jobs, total, err := h.jobUC.ListActiveJobs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Active job list", gin.H{
		"jobs":      jobs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetActiveJobDetails godoc
// @Summary      Get active job details
// @Tags         activejobs
// @Produce      json
// @Param        slug  path      string  true  "Job slug"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /activejobs/{slug} [get]
func (h *ActiveJobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetActiveJobDetails(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}
