package usecase

import (
	"context"
	"testing"

	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/repository"
	"online-health-consultation/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditTrail(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	audit := newAuditService()
	uc := NewAuditLogUsecase(db, testutil.NewLogger(), repository.NewAuditLogRepository())

	admin := testutil.CreateAdmin(t, db, "auditadmin")
	for _, action := range []string{entity.AuditActionEmergencyResolve, entity.AuditActionEmergencyResolve, entity.AuditActionProfilesBackfill} {
		require.NoError(t, audit.Record(ctx, db, &admin.ID, action, "x", "1", nil))
	}
	require.NoError(t, audit.Record(ctx, db, nil, entity.AuditActionEmergencyResolve, "x", "2", nil))

	all, err := uc.GetAllAuditLogs(ctx, "", nil, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 4, all.Total)
	assert.Len(t, all.Logs, 2)

	resolves, err := uc.GetAllAuditLogs(ctx, entity.AuditActionEmergencyResolve, &admin.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resolves.Total)

	entry, err := uc.GetAuditLog(ctx, resolves.Logs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditActionEmergencyResolve, entry.Action)
	assert.Equal(t, "auditadmin", entry.Username)

	_, err = uc.GetAuditLog(ctx, 9999)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}
