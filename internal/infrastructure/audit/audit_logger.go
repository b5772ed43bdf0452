// Package audit provides the fire-and-forget audit-log sink.
package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/collection"
	"github.com/hotelstock/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuditLog is one persisted audit row. Details is serialized JSON.
type AuditLog struct {
	shared.BaseEntity
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_logs_user"`
	HotelID    uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_logs_hotel"`
	Action     string    `gorm:"size:100;not null"`
	EntityType string    `gorm:"size:100;not null"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null"`
	Details    string    `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}

// GormAuditLogger implements collection.AuditLogger against the audit_logs
// table. Writes happen outside any collection transaction; callers treat
// failures as non-fatal.
type GormAuditLogger struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormAuditLogger creates a new GormAuditLogger
func NewGormAuditLogger(db *gorm.DB, logger *zap.Logger) *GormAuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormAuditLogger{db: db, logger: logger.Named("audit")}
}

// Log persists one audit entry
func (a *GormAuditLogger) Log(ctx context.Context, entry collection.AuditEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return err
	}

	row := &AuditLog{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     entry.UserID,
		HotelID:    entry.HotelID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    string(details),
	}
	if err := a.db.WithContext(ctx).Create(row).Error; err != nil {
		a.logger.Error("failed to persist audit entry",
			zap.String("action", entry.Action),
			zap.String("entity_id", entry.EntityID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

// Ensure GormAuditLogger implements collection.AuditLogger
var _ collection.AuditLogger = (*GormAuditLogger)(nil)
