package usecase

import (
	"testing"

	"online-health-consultation/internal/repository"
	"online-health-consultation/internal/service"
	"online-health-consultation/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newAuditService() service.AuditService {
	return service.NewAuditService(testutil.NewLogger(), repository.NewAuditLogRepository())
}

func newTokenStore(t *testing.T) service.TokenStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return service.NewRedisTokenStore(client)
}

func intPtr(v int) *int {
	return &v
}
