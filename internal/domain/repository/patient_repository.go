package repository

import (
	"poliklinik-queue-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByNIK(db *gorm.DB, nik string) (*entity.Patient, error)
	FindByName(db *gorm.DB, name string) (*entity.Patient, error)
	FindAll(db *gorm.DB, nik string) ([]entity.Patient, error)
}
