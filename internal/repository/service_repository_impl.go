package repository

import (
	"errors"

	"poliklinik-queue-backend/internal/domain/entity"
	domainRepo "poliklinik-queue-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type serviceRepository struct{}

func NewServiceRepository() domainRepo.ServiceRepository {
	return &serviceRepository{}
}

func (r *serviceRepository) Create(db *gorm.DB, service *entity.Service) error {
	return db.Create(service).Error
}

func (r *serviceRepository) FindByID(db *gorm.DB, id int) (*entity.Service, error) {
	var service entity.Service
	err := db.Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByName(db *gorm.DB, name string) (*entity.Service, error) {
	var service entity.Service
	err := db.Where("name = ?", name).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByPrefix(db *gorm.DB, prefix string) (*entity.Service, error) {
	var service entity.Service
	err := db.Where("prefix = ?", prefix).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindAll(db *gorm.DB) ([]entity.Service, error) {
	var services []entity.Service
	err := db.Order("name ASC").Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) Update(db *gorm.DB, service *entity.Service) error {
	return db.Save(service).Error
}

func (r *serviceRepository) Delete(db *gorm.DB, id int) error {
	return db.Delete(&entity.Service{}, id).Error
}

func (r *serviceRepository) CountActiveDoctors(db *gorm.DB, serviceID int) (int64, error) {
	var count int64
	err := db.Model(&entity.Doctor{}).
		Where("service_id = ? AND is_active = ?", serviceID, true).
		Count(&count).Error
	return count, err
}
