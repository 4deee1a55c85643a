package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/felixotieno/haraka-api/internal/domain/entity"
)

type memIdempotencyRepo struct {
	keys      map[string]*entity.IdempotencyKey
	createErr error
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (f *memIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	stored, ok := f.keys[key+"/"+userID.String()]
	if !ok {
		return nil, nil
	}
	return stored, nil
}

func (f *memIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.keys[ikey.Key+"/"+ikey.UserID.String()] = ikey
	return nil
}

func (f *memIdempotencyRepo) DeleteExpired(context.Context) error { return nil }

func idempotencyTestRouter(repo *memIdempotencyRepo, log *logrus.Logger, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	router.POST("/pay", IdempotencyRequired(repo, log), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})
	return router
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	repo := newMemIdempotencyRepo()
	log, _ := test.NewNullLogger()
	router := idempotencyTestRouter(repo, log, uuid.New())

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(first, req)
	if first.Code != http.StatusCreated {
		t.Fatalf("first request status = %d, want 201", first.Code)
	}

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(second, req)
	if second.Code != http.StatusCreated {
		t.Errorf("replay status = %d, want 201", second.Code)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("replay header missing on cached response")
	}
	if second.Body.String() != first.Body.String() {
		t.Error("replayed body differs from the original response")
	}
}

func TestIdempotencyMissingKeyRejected(t *testing.T) {
	repo := newMemIdempotencyRepo()
	log, _ := test.NewNullLogger()
	router := idempotencyTestRouter(repo, log, uuid.New())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader("{}"))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestIdempotencyCacheWriteFailureIsLogged(t *testing.T) {
	repo := newMemIdempotencyRepo()
	repo.createErr = errors.New("connection reset")
	log, hook := test.NewNullLogger()
	router := idempotencyTestRouter(repo, log, uuid.New())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-2")
	router.ServeHTTP(rec, req)

	// The client still gets its response
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["key"] == "key-2" {
			warned = true
		}
	}
	if !warned {
		t.Error("failed cache write was not logged")
	}
}
