package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signedToken(t *testing.T, subject, issuer string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware(testSecret, "clara"))
	router.GET("/me", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.String(http.StatusOK, userID)
	})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"valid token", "Bearer " + signedToken(t, "user-1", "clara", time.Hour), http.StatusOK, "user-1"},
		{"wrong issuer", "Bearer " + signedToken(t, "user-1", "other", time.Hour), http.StatusUnauthorized, ""},
		{"expired token", "Bearer " + signedToken(t, "user-1", "clara", -time.Hour), http.StatusUnauthorized, ""},
		{"missing subject", "Bearer " + signedToken(t, "", "clara", time.Hour), http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestPracticeScope(t *testing.T) {
	router := gin.New()
	router.GET("/practices/:practice_id/ping", PracticeScope(), func(c *gin.Context) {
		scope, ok := GetTenantScope(c)
		require.True(t, ok)
		c.String(http.StatusOK, scope.PracticeID())
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/practices/practice-9/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "practice-9", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/practices/%20/ping", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimit_MemoryStore(t *testing.T) {
	limiterInstance, err := NewRateLimiter("2-M", nil)
	require.NoError(t, err)

	router := gin.New()
	router.Use(RateLimit(limiterInstance))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestNewRateLimiter_BadFormat(t *testing.T) {
	_, err := NewRateLimiter("lots", nil)
	assert.Error(t, err)
}

type memoryIdempotencyStore struct {
	mu    sync.Mutex
	items map[string]StoredResponse
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{items: map[string]StoredResponse{}}
}

func (s *memoryIdempotencyStore) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; ok {
		return false, nil
	}
	s.items[key] = StoredResponse{Pending: true}
	return true, nil
}

func (s *memoryIdempotencyStore) Lookup(_ context.Context, key string) (*StoredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resp, ok := s.items[key]; ok {
		return &resp, nil
	}
	return nil, nil
}

func (s *memoryIdempotencyStore) Store(_ context.Context, key string, resp StoredResponse, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = resp
	return nil
}

func (s *memoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0

	router := gin.New()
	router.POST("/practices/:practice_id/claims/prepare", Idempotency(store, time.Hour), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"call": calls})
	})

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/practices/p1/claims/prepare", nil)
		if key != "" {
			req.Header.Set(IdempotencyHeader, key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send("abc")
	second := send("abc")
	third := send("")
	fourth := send("")

	assert.Equal(t, 3, calls)
	assert.JSONEq(t, `{"call":1}`, first.Body.String())
	assert.JSONEq(t, `{"call":1}`, second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.JSONEq(t, `{"call":2}`, third.Body.String())
	assert.JSONEq(t, `{"call":3}`, fourth.Body.String())
}

func TestIdempotency_ConcurrentRepeatRunsHandlerOnce(t *testing.T) {
	store := newMemoryIdempotencyStore()
	var mu sync.Mutex
	calls := 0
	entered := make(chan struct{})
	finish := make(chan struct{})

	router := gin.New()
	router.POST("/practices/:practice_id/claims", Idempotency(store, time.Hour), func(c *gin.Context) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(entered)
		<-finish
		c.JSON(http.StatusCreated, gin.H{"claim_id": "CLM-1"})
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/practices/p1/claims", nil)
		req.Header.Set(IdempotencyHeader, "k1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	firstDone := make(chan *httptest.ResponseRecorder, 1)
	go func() { firstDone <- send() }()
	<-entered

	inFlight := send()
	assert.Equal(t, http.StatusConflict, inFlight.Code)
	assert.JSONEq(t, `{"error":"request with this Idempotency-Key is in progress"}`, inFlight.Body.String())

	close(finish)
	first := <-firstDone
	assert.Equal(t, http.StatusCreated, first.Code)

	replay := send()
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("Idempotent-Replayed"))
	assert.JSONEq(t, `{"claim_id":"CLM-1"}`, replay.Body.String())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestIdempotency_ServerErrorReleasesKey(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0

	router := gin.New()
	router.POST("/practices/:practice_id/claims", Idempotency(store, time.Hour), func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "retry"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/practices/p1/claims", nil)
		req.Header.Set(IdempotencyHeader, "k1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusServiceUnavailable, send().Code)
	retried := send()
	assert.Equal(t, http.StatusCreated, retried.Code)
	assert.JSONEq(t, `{"call":2}`, retried.Body.String())
	assert.Equal(t, 2, calls)
}

func TestIdempotency_PanicReleasesKey(t *testing.T) {
	store := newMemoryIdempotencyStore()

	router := gin.New()
	router.Use(gin.Recovery())
	router.POST("/practices/:practice_id/claims", Idempotency(store, time.Hour), func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodPost, "/practices/p1/claims", nil)
	req.Header.Set(IdempotencyHeader, "k1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.items)
}
