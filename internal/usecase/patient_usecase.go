package usecase

import (
	"context"
	"errors"

	"poliklinik-queue-backend/internal/converter"
	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientUsecase interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	List(ctx context.Context, nik string) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{db: db, log: log, patientRepo: patientRepo}
}

func (u *patientUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context, nik string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx), nik)
	if err != nil {
		return nil, err
	}
	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}
