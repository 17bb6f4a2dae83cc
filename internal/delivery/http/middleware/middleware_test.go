package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"job-posting-backend/internal/delivery/http/middleware"
	"job-posting-backend/internal/delivery/http/response"
	"job-posting-backend/internal/domain"
	"job-posting-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperror.Conflict("taken")) })
	r.GET("/validation", func(c *gin.Context) {
		_ = c.Error(&domain.ValidationError{Fields: map[string][]string{"title": {"This field is required."}}})
	})
	r.GET("/dates", func(c *gin.Context) { _ = c.Error(&domain.InvalidDateOrderError{}) })
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(domain.ErrNotFound) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("pq: password authentication failed")) })

	t.Run("Should use the AppError status", func(t *testing.T) {
		w := perform(r, httptest.NewRequest(http.MethodGet, "/app", nil))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Should return field errors as 400", func(t *testing.T) {
		w := perform(r, httptest.NewRequest(http.MethodGet, "/validation", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "This field is required.")
	})

	t.Run("Should return business rule errors as 400", func(t *testing.T) {
		w := perform(r, httptest.NewRequest(http.MethodGet, "/dates", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "start date should be before end date")
	})

	t.Run("Should map ErrNotFound to 404", func(t *testing.T) {
		w := perform(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Should hide internal errors", func(t *testing.T) {
		w := perform(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%v", c.Request.Context().Value(domain.KeyRequestID))
	})

	t.Run("Should keep a well formed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-12345678")
		w := perform(r, req)
		assert.Equal(t, "req-12345678", w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, "req-12345678", w.Body.String())
	})

	t.Run("Should echo the id in the response envelope", func(t *testing.T) {
		r := gin.New()
		r.Use(middleware.RequestID(), middleware.ErrorHandler())
		r.GET("/ok", func(c *gin.Context) { response.Success(c, http.StatusOK, "ok", nil) })
		r.GET("/fail", func(c *gin.Context) { _ = c.Error(apperror.Conflict("taken")) })

		for _, path := range []string{"/ok", "/fail"} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set(middleware.RequestIDHeader, "req-12345678")
			w := perform(r, req)

			var body response.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "req-12345678", body.RequestID, path)
		}
	})

	t.Run("Should replace a malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "<script>")
		w := perform(r, req)
		assert.NotEqual(t, "<script>", w.Header().Get(middleware.RequestIDHeader))
		assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	})
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.AuthMiddleware("s3cret", nil))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(domain.KeyUserID)))
	})

	request := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return perform(r, req)
	}

	t.Run("Should accept a valid token", func(t *testing.T) {
		w := request(signed(t, "s3cret", jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", w.Body.String())
	})

	t.Run("Should reject a missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, request("").Code)
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		w := request(signed(t, "other", jwt.MapClaims{"sub": "user-1"}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		w := request(signed(t, "s3cret", jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Hour).Unix()}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware([]string{"https://jobs.example.com"}, true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Should allow configured origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://jobs.example.com")
		w := perform(r, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://jobs.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should refuse localhost in production", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := perform(r, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimiterInMemory(t *testing.T) {
	limiter := middleware.NewRateLimiter(nil, nil)
	r := gin.New()
	r.Use(limiter.Middleware(middleware.WriteRateLimitConfig(2, time.Minute)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterDefaults(t *testing.T) {
	config := middleware.DefaultRateLimitConfig()
	limiter := middleware.NewRateLimiter(nil, nil)
	r := gin.New()
	r.Use(limiter.Middleware(config))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Should advertise the default limit", func(t *testing.T) {
		w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "100", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "99", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Should reject requests past the default limit", func(t *testing.T) {
		for i := 1; i < config.Limit; i++ {
			require.Equal(t, http.StatusOK, perform(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
		}
		w := perform(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})
}
