package repository

import (
	"poliklinik-queue-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	FindByID(db *gorm.DB, id int) (*entity.Service, error)
	FindByName(db *gorm.DB, name string) (*entity.Service, error)
	FindByPrefix(db *gorm.DB, prefix string) (*entity.Service, error)
	FindAll(db *gorm.DB) ([]entity.Service, error)
	Update(db *gorm.DB, service *entity.Service) error
	Delete(db *gorm.DB, id int) error
	CountActiveDoctors(db *gorm.DB, serviceID int) (int64, error)
}
