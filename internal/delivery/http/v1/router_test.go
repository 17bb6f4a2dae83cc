package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"job-posting-backend/config"
	v1 "job-posting-backend/internal/delivery/http/v1"
	"job-posting-backend/internal/repository/memory"
	"job-posting-backend/internal/usecase"
	"job-posting-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type testAPI struct {
	router http.Handler
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jobs := memory.NewJobRepository()
	areas := memory.NewPostAreaRepository()
	cleaning := areas.MustAdd("Cleaning", nil)
	areas.MustAdd("Windows", &cleaning)
	areas.MustAdd("Gardening", nil)

	validate := validation.New()
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:      usecase.NewJobUsecase(jobs, areas, validate, nil, nil),
		PostAreaUC: usecase.NewPostAreaUsecase(areas),
		JobCreator: usecase.NewCreateJobService(jobs, areas, validate, nil, nil),
		HealthUC:   usecase.NewHealthUsecase(nil),
		Config: &config.Config{
			AppEnv:                   "test",
			JWTSecret:                testSecret,
			RateLimitWindowSeconds:   60,
			RateLimitGlobalThreshold: 1000,
			RateLimitWriteThreshold:  1000,
		},
	})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "poster-1",
		"email": "poster@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return &testAPI{router: router, token: token}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, auth bool) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp apiResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func jobBody(start time.Time) map[string]any {
	return map[string]any{
		"title":            "Clean my windows",
		"email":            "poster@example.com",
		"date_start":       start.Format(time.RFC3339),
		"date_end":         start.Add(4 * time.Hour).Format(time.RFC3339),
		"amount_to_pay":    60,
		"post_subcategory": "Windows",
		"slug":             "chosen-by-client",
		"payment_comission": map[string]any{
			"percentage": 0,
		},
	}
}

type createdJob struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	PaymentComission struct {
		Percentage int `json:"percentage"`
	} `json:"payment_comission"`
	PostCategory struct {
		Name string `json:"name"`
	} `json:"post_category"`
}

func TestCreateJobEndpoint(t *testing.T) {
	start := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("Should require authentication", func(t *testing.T) {
		api := newTestAPI(t)
		w, _ := api.do(t, http.MethodPost, "/v1/jobs", jobBody(start), false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should create a job with derived slug and commission", func(t *testing.T) {
		api := newTestAPI(t)
		w, resp := api.do(t, http.MethodPost, "/v1/jobs", jobBody(start), true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var job createdJob
		require.NoError(t, json.Unmarshal(resp.Data, &job))
		assert.Equal(t, "clean-my-windows-"+job.ID, job.Slug)
		assert.Equal(t, 20, job.PaymentComission.Percentage)
		assert.Equal(t, "Cleaning", job.PostCategory.Name)
	})

	t.Run("Should reject an end date before the start date", func(t *testing.T) {
		api := newTestAPI(t)
		body := jobBody(start)
		body["date_end"] = start.Add(-time.Hour).Format(time.RFC3339)

		w, resp := api.do(t, http.MethodPost, "/v1/jobs", body, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "start date should be before end date", resp.Message)
	})

	t.Run("Should return field errors for missing values", func(t *testing.T) {
		api := newTestAPI(t)
		body := jobBody(start)
		delete(body, "title")

		w, resp := api.do(t, http.MethodPost, "/v1/jobs", body, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var fields map[string][]string
		require.NoError(t, json.Unmarshal(resp.Error, &fields))
		assert.Equal(t, []string{"This field is required."}, fields["title"])
	})

	t.Run("Should reject categories that do not belong together", func(t *testing.T) {
		api := newTestAPI(t)
		body := jobBody(start)
		body["post_category"] = "Gardening"

		w, resp := api.do(t, http.MethodPost, "/v1/jobs", body, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, resp.Message, "do not belong together")
	})
}

func TestJobLifecycleEndpoints(t *testing.T) {
	api := newTestAPI(t)
	start := time.Now().Add(time.Hour).Truncate(time.Second)

	w, resp := api.do(t, http.MethodPost, "/v1/jobs", jobBody(start), true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var job createdJob
	require.NoError(t, json.Unmarshal(resp.Data, &job))

	t.Run("Should list active jobs", func(t *testing.T) {
		w, resp := api.do(t, http.MethodGet, "/v1/activejobs?payment_tier=great_payed", nil, false)
		require.Equal(t, http.StatusOK, w.Code)

		var page struct {
			Total int64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("Should reject a non numeric payment filter", func(t *testing.T) {
		w, _ := api.do(t, http.MethodGet, "/v1/activejobs?min_payment=lots", nil, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Should return the job by slug", func(t *testing.T) {
		w, _ := api.do(t, http.MethodGet, "/v1/activejobs/"+job.Slug, nil, false)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should follow the title when updating", func(t *testing.T) {
		w, resp := api.do(t, http.MethodPatch, "/v1/jobs/"+job.Slug, map[string]any{"title": "Wash the car"}, true)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated createdJob
		require.NoError(t, json.Unmarshal(resp.Data, &updated))
		assert.Equal(t, "wash-the-car-"+job.ID, updated.Slug)
		job = updated
	})

	t.Run("Should export jobs as CSV", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/exports/jobs?format=csv", nil)
		req.Header.Set("Authorization", "Bearer "+api.token)
		w := httptest.NewRecorder()
		api.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
		assert.Contains(t, w.Body.String(), job.Slug)
	})

	t.Run("Should hide deleted jobs", func(t *testing.T) {
		w, _ := api.do(t, http.MethodDelete, "/v1/jobs/"+job.Slug, nil, true)
		require.Equal(t, http.StatusOK, w.Code)

		w, _ = api.do(t, http.MethodGet, "/v1/jobs/"+job.Slug, nil, false)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Should require an avatar file", func(t *testing.T) {
		w, _ := api.do(t, http.MethodPost, "/v1/jobs/"+job.Slug+"/avatar", nil, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPublicEndpoints(t *testing.T) {
	api := newTestAPI(t)

	t.Run("Should report health", func(t *testing.T) {
		w, resp := api.do(t, http.MethodGet, "/v1/health", nil, false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	})

	t.Run("Should list the category tree", func(t *testing.T) {
		w, resp := api.do(t, http.MethodGet, "/v1/post-areas", nil, false)
		require.Equal(t, http.StatusOK, w.Code)

		var tree []struct {
			Name          string `json:"name"`
			Subcategories []struct {
				Name string `json:"name"`
			} `json:"subcategories"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &tree))
		require.Len(t, tree, 2)
		assert.Equal(t, "Cleaning", tree[0].Name)
		assert.Equal(t, "Windows", tree[0].Subcategories[0].Name)
	})

	t.Run("Should return 404 for unknown slugs", func(t *testing.T) {
		w, _ := api.do(t, http.MethodGet, "/v1/jobs/does-not-exist", nil, false)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
