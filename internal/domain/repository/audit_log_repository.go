package repository

import (
	"context"

	"online-health-consultation/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error)
	List(ctx context.Context, db *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, int64, error)
}
