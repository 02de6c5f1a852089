package repository

import (
	"poliklinik-queue-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id int) (*entity.Doctor, error)
	FindByCode(db *gorm.DB, code string) (*entity.Doctor, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	FindActive(db *gorm.DB) ([]entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Delete(db *gorm.DB, id int) error
}
