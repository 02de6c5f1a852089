package repository

import (
	"errors"

	"poliklinik-queue-backend/internal/domain/entity"
	domainRepo "poliklinik-queue-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type visitHistoryRepository struct{}

func NewVisitHistoryRepository() domainRepo.VisitHistoryRepository {
	return &visitHistoryRepository{}
}

func (r *visitHistoryRepository) Archive(db *gorm.DB, history *entity.VisitHistory) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_visit_id"}},
		DoNothing: true,
	}).Create(history).Error
}

func (r *visitHistoryRepository) FindBySourceVisitID(db *gorm.DB, sourceVisitID uuid.UUID) (*entity.VisitHistory, error) {
	var history entity.VisitHistory
	err := db.Preload("Patient").Preload("Doctor").Preload("Service").
		Where("source_visit_id = ?", sourceVisitID).First(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &history, nil
}

func (r *visitHistoryRepository) FindAll(db *gorm.DB) ([]entity.VisitHistory, error) {
	var histories []entity.VisitHistory
	err := db.Preload("Doctor").Preload("Service").
		Order("t_register ASC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}
