package repository

import (
	"time"

	"poliklinik-queue-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitFilter narrows queue listings by clinic and/or doctor.
type VisitFilter struct {
	ServiceID *int
	DoctorID  *int
}

type VisitRepository interface {
	Create(db *gorm.DB, visit *entity.Visit) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Visit, error)
	// FindByIDForUpdate loads the visit under a row lock, serializing
	// concurrent status transitions on the same visit.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Visit, error)
	FindByDate(db *gorm.DB, date time.Time, filter VisitFilter) ([]entity.Visit, error)
	// CountActiveByDoctorAndDate counts non-terminal visits; terminal visits
	// never appear here because archival removes them from the active table.
	CountActiveByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) (int64, error)
	Save(db *gorm.DB, visit *entity.Visit) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
