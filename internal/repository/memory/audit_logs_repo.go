package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/library-backend/internal/models"
	"github.com/baharkarakas/library-backend/internal/repository"
)

type auditLogsRepo struct{ store *ordered[models.AuditLog] }

func NewAuditLogs() repository.AuditLogs {
	return &auditLogsRepo{store: newOrdered[models.AuditLog]()}
}

func (r *auditLogsRepo) Create(l models.AuditLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.store.insert(l.ID, l)
	return nil
}

func (r *auditLogsRepo) List() ([]models.AuditLog, error) { return r.store.all(), nil }
