package repository

import (
	"errors"
	"strings"

	"poliklinik-queue-backend/internal/domain/entity"
	domainRepo "poliklinik-queue-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	patient.Name = strings.ToUpper(strings.TrimSpace(patient.Name))
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByNIK(db *gorm.DB, nik string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("nik = ?", nik).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByName(db *gorm.DB, name string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("name = ?", strings.ToUpper(strings.TrimSpace(name))).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(db *gorm.DB, nik string) ([]entity.Patient, error) {
	var patients []entity.Patient
	query := db.Order("name ASC")
	if nik != "" {
		query = query.Where("nik = ?", nik)
	}
	err := query.Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}
