package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"online-health-consultation/config"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/service"
	"online-health-consultation/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (*AuthMiddleware, *jwt.JWTService, service.TokenStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Minute, RefreshExpiry: time.Hour})
	store := service.NewRedisTokenStore(client)
	return NewAuthMiddleware(jwtService, store), jwtService, store
}

func echoIdentity(t *testing.T, wantID uuid.UUID, wantRole entity.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantID, id)
		role, ok := GetRoleFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantRole, role)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	auth, jwtService, store := newAuth(t)
	userID := uuid.New()
	ctx := context.Background()

	access, accessID, err := jwtService.GenerateAccessToken(userID, "doc", string(entity.RoleDoctor))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, userID, jwt.AccessToken, accessID, time.Minute))
	refresh, refreshID, err := jwtService.GenerateRefreshToken(userID, "doc", string(entity.RoleDoctor))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, userID, jwt.RefreshToken, refreshID, time.Hour))

	handler := auth.Authenticate(echoIdentity(t, userID, entity.RoleDoctor))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + access, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"valid", "Bearer " + access, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	t.Run("revoked", func(t *testing.T) {
		require.NoError(t, store.Revoke(ctx, userID, jwt.AccessToken, accessID))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		role   *entity.Role
		guard  func(http.Handler) http.Handler
		status int
	}{
		{"no role in context", nil, RequireAdmin, http.StatusUnauthorized},
		{"patient on admin route", rolePtr(entity.RolePatient), RequireAdmin, http.StatusForbidden},
		{"admin on admin route", rolePtr(entity.RoleAdmin), RequireAdmin, http.StatusOK},
		{"doctor on patient route", rolePtr(entity.RoleDoctor), RequirePatient, http.StatusForbidden},
		{"doctor on author route", rolePtr(entity.RoleDoctor), RequireAdminOrDoctor, http.StatusOK},
		{"patient on author route", rolePtr(entity.RolePatient), RequireAdminOrDoctor, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), RoleKey, *tt.role))
			}
			rec := httptest.NewRecorder()
			tt.guard(ok).ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func rolePtr(r entity.Role) *entity.Role {
	return &r
}

type stubLimiter struct {
	allowed bool
	ttl     time.Duration
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.ttl, s.err
}

func TestRateLimit(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)

	t.Run("over the limit behind a trusted proxy", func(t *testing.T) {
		limiter := &stubLimiter{allowed: false, ttl: 1500 * time.Millisecond}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/emergency/contact", nil)
		req.RemoteAddr = "10.0.0.2:41000"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		rec := httptest.NewRecorder()

		NewRateLimitMiddleware(limiter, proxies, log).Limit(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("Retry-After"))
		assert.Equal(t, []string{"203.0.113.7"}, limiter.keys)
	})

	t.Run("within the limit", func(t *testing.T) {
		limiter := &stubLimiter{allowed: true, ttl: time.Minute}
		rec := httptest.NewRecorder()
		NewRateLimitMiddleware(limiter, proxies, log).Limit(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("limiter down fails open", func(t *testing.T) {
		limiter := &stubLimiter{err: errors.New("connection refused")}
		rec := httptest.NewRecorder()
		NewRateLimitMiddleware(limiter, proxies, log).Limit(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("rotating forwarded header from a direct client", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })
		limiter := service.NewRedisRateLimiter(client, "emergency", 2, time.Minute)
		handler := NewRateLimitMiddleware(limiter, proxies, log).Limit(next)

		accepted := 0
		for i := 0; i < 20; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/emergency/contact", nil)
			req.RemoteAddr = "198.51.100.9:5000"
			req.Header.Set("X-Forwarded-For", fmt.Sprintf("192.0.2.%d", i+1))
			req.Header.Set("X-Real-Ip", fmt.Sprintf("203.0.113.%d", i+1))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code == http.StatusCreated {
				accepted++
			}
		}
		assert.Equal(t, 2, accepted)
		assert.True(t, mr.Exists("ratelimit:emergency:198.51.100.9"))
	})
}

func TestClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", "192.0.2.1"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		realIP     string
		want       string
	}{
		{"direct client", "198.51.100.4:5123", "", "", "198.51.100.4"},
		{"spoofed forwarded header", "198.51.100.4:5123", "203.0.113.7", "", "198.51.100.4"},
		{"spoofed real ip", "198.51.100.4:5123", "", "203.0.113.8", "198.51.100.4"},
		{"trusted proxy forwards", "10.1.2.3:80", "203.0.113.7", "", "203.0.113.7"},
		{"client-supplied hop ignored", "10.1.2.3:80", "6.6.6.6, 203.0.113.7, 10.0.0.9", "", "203.0.113.7"},
		{"single trusted address", "192.0.2.1:80", "203.0.113.5", "", "203.0.113.5"},
		{"real ip from trusted proxy", "10.1.2.3:80", "", "203.0.113.8", "203.0.113.8"},
		{"garbage header", "10.1.2.3:80", "not-an-ip", "", "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-Ip", tt.realIP)
			}
			assert.Equal(t, tt.want, proxies.ClientIP(req))
		})
	}

	var none *TrustedProxies
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:80"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, "10.1.2.3", none.ClientIP(req))

	_, err = ParseTrustedProxies([]string{"not-a-cidr/33"})
	assert.Error(t, err)
}

func TestLoggingSetsRequestID(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	var seen string
	handler := NewLoggingMiddleware(log).Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetRequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name       string
		origins    []string
		method     string
		origin     string
		wantOrigin string
		wantCode   int
	}{
		{"wildcard by default", nil, http.MethodGet, "https://a.example", "*", http.StatusTeapot},
		{"listed origin echoed", []string{"https://app.example"}, http.MethodGet, "https://app.example", "https://app.example", http.StatusTeapot},
		{"unlisted origin omitted", []string{"https://app.example"}, http.MethodGet, "https://evil.example", "", http.StatusTeapot},
		{"preflight short-circuits", []string{"*"}, http.MethodOptions, "https://a.example", "*", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/articles", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			NewCORSMiddleware(tt.origins).Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
		})
	}
}
