package service

import (
	"context"

	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes audit trail entries for administrative changes.
// Entries are written with the caller's handle so they commit or roll back
// together with the change they describe.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error
	LogEvent(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, details entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	return s.write(ctx, tx, actorID, action, changeMetadata(entityName, entityID, nil, newValue))
}

func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, actorID, action, changeMetadata(entityName, entityID, oldValue, newValue))
}

func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	return s.write(ctx, tx, actorID, action, changeMetadata(entityName, entityID, oldValue, nil))
}

// LogEvent records an action that is not a change to a single entity, such as a login.
func (s *auditService) LogEvent(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, details entity.JSON) error {
	return s.write(ctx, tx, actorID, action, details)
}

func changeMetadata(entityName, entityID string, oldValue, newValue interface{}) entity.JSON {
	return entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	}
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, metadata entity.JSON) error {
	// A nil actor is stored as NULL rather than the zero UUID.
	if actorID != nil && *actorID == uuid.Nil {
		actorID = nil
	}
	if tx != nil {
		tx = tx.WithContext(ctx)
	}

	auditLog := &entity.AuditLog{
		UserID:   actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
