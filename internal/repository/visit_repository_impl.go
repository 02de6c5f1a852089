package repository

import (
	"errors"
	"time"

	"poliklinik-queue-backend/internal/domain/entity"
	domainRepo "poliklinik-queue-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type visitRepository struct{}

func NewVisitRepository() domainRepo.VisitRepository {
	return &visitRepository{}
}

func (r *visitRepository) Create(db *gorm.DB, visit *entity.Visit) error {
	return db.Create(visit).Error
}

func (r *visitRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Visit, error) {
	var visit entity.Visit
	err := db.Preload("Patient").Preload("Doctor").Preload("Service").
		Where("id = ?", id).First(&visit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Visit, error) {
	var visit entity.Visit
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&visit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepository) FindByDate(db *gorm.DB, date time.Time, filter domainRepo.VisitFilter) ([]entity.Visit, error) {
	var visits []entity.Visit
	query := db.Preload("Patient").Preload("Doctor").Preload("Service").
		Where("visit_date = ?", date.Format("2006-01-02"))
	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	err := query.Order("queue_sequence ASC").Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *visitRepository) CountActiveByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Visit{}).
		Where("doctor_id = ? AND visit_date = ?", doctorID, date.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

func (r *visitRepository) Save(db *gorm.DB, visit *entity.Visit) error {
	return db.Save(visit).Error
}

func (r *visitRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.Visit{}, "id = ?", id).Error
}
