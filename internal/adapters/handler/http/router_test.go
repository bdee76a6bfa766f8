package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	adapterHTTP "github.com/mlorenzato/ritmo/internal/adapters/handler/http"
	"github.com/mlorenzato/ritmo/internal/adapters/handler/http/middleware"
	"github.com/mlorenzato/ritmo/internal/adapters/repository"
	"github.com/mlorenzato/ritmo/internal/core/services"
)

// testEnv wires the full handler stack over the in-memory repositories.
// Identity is injected through the X-User-ID header instead of a real JWT
// so each test can act as an arbitrary user.
type testEnv struct {
	router *gin.Engine

	users       *repository.InMemoryUserRepository
	categories  *repository.InMemoryCategoryRepository
	habits      *repository.InMemoryHabitRepository
	subs        *repository.InMemorySubscriptionRepository
	completions *repository.InMemoryCompletionRepository

	authService       *services.AuthService
	habitService      *services.HabitService
	subService        *services.SubscriptionService
	completionService *services.CompletionService
}

func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}
		c.Set(middleware.ContextUserIDKey, userID)
		c.Next()
	}
}

func setupEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	users := repository.NewInMemoryUserRepository()
	categories := repository.NewInMemoryCategoryRepository()
	habits := repository.NewInMemoryHabitRepository()
	subs := repository.NewInMemorySubscriptionRepository()
	completions := repository.NewInMemoryCompletionRepository(subs)

	authService := services.NewAuthService(users)
	tokenService := services.NewTokenService("test-secret", "ritmo-test", time.Hour, users)
	habitService := services.NewHabitService(habits, categories)
	subService := services.NewSubscriptionService(subs, habits)
	completionService := services.NewCompletionService(completions, subs)
	statsService := services.NewStatsService(subs, completions)

	r := gin.New()
	apiV1 := r.Group("/api/v1")

	adapterHTTP.NewAuthHandler(authService, tokenService).RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	protected.Use(identityMiddleware())
	{
		adapterHTTP.NewHabitHandler(habitService).RegisterRoutes(protected)
		adapterHTTP.NewSubscriptionHandler(subService, completionService).RegisterRoutes(protected)
		adapterHTTP.NewStatsHandler(statsService).RegisterRoutes(protected)
	}

	return &testEnv{
		router:            r,
		users:             users,
		categories:        categories,
		habits:            habits,
		subs:              subs,
		completions:       completions,
		authService:       authService,
		habitService:      habitService,
		subService:        subService,
		completionService: completionService,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}
