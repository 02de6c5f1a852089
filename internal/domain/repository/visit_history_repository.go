package repository

import (
	"poliklinik-queue-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VisitHistoryRepository interface {
	// Archive inserts the mirror row. Inserting the same source visit twice
	// is a no-op, keeping terminal transitions idempotent under retries.
	Archive(db *gorm.DB, history *entity.VisitHistory) error
	FindBySourceVisitID(db *gorm.DB, sourceVisitID uuid.UUID) (*entity.VisitHistory, error)
	FindAll(db *gorm.DB) ([]entity.VisitHistory, error)
}
