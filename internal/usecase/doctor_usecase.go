package usecase

import (
	"context"
	"errors"
	"strings"

	"poliklinik-queue-backend/internal/converter"
	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/entity"
	"poliklinik-queue-backend/internal/domain/repository"
	"poliklinik-queue-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDuplicateDoctorCode = errors.New("doctor code already exists")

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Get(ctx context.Context, id int) (*dto.DoctorResponse, error)
	List(ctx context.Context) (*dto.DoctorListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id int) error
}

type doctorUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	doctorRepo  repository.DoctorRepository
	serviceRepo repository.ServiceRepository
	board       *service.QueueBoardService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	serviceRepo repository.ServiceRepository,
	board *service.QueueBoardService,
) DoctorUsecase {
	return &doctorUsecase{
		db:          db,
		log:         log,
		doctorRepo:  doctorRepo,
		serviceRepo: serviceRepo,
		board:       board,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	active := true
	doctor := &entity.Doctor{
		Name:              strings.TrimSpace(req.Name),
		DoctorCode:        strings.TrimSpace(req.DoctorCode),
		ServiceID:         req.ServiceID,
		PracticeStartTime: req.PracticeStartTime,
		PracticeEndTime:   req.PracticeEndTime,
		MaxPatients:       req.MaxPatients,
		IsActive:          &active,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		svc, err := u.serviceRepo.FindByID(tx, req.ServiceID)
		if err != nil {
			return err
		}
		if svc == nil {
			return ErrServiceNotFound
		}
		if existing, err := u.doctorRepo.FindByCode(tx, doctor.DoctorCode); err != nil {
			return err
		} else if existing != nil {
			return ErrDuplicateDoctorCode
		}
		return u.doctorRepo.Create(tx, doctor)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateDoctorCode
		}
		return nil, err
	}

	u.board.Invalidate(ctx, doctor.ID)
	u.log.Infof("Doctor created: id=%d, code=%s, service=%d", doctor.ID, doctor.DoctorCode, doctor.ServiceID)

	full, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctor.ID)
	if err != nil || full == nil {
		return converter.DoctorToResponse(doctor), nil
	}
	return converter.DoctorToResponse(full), nil
}

func (u *doctorUsecase) Get(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) List(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) Update(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	var doctor *entity.Doctor
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		doctor, err = u.doctorRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}
		if req.ServiceID != nil {
			svc, err := u.serviceRepo.FindByID(tx, *req.ServiceID)
			if err != nil {
				return err
			}
			if svc == nil {
				return ErrServiceNotFound
			}
			doctor.ServiceID = *req.ServiceID
		}
		if req.Name != nil {
			doctor.Name = strings.TrimSpace(*req.Name)
		}
		if req.PracticeStartTime != nil {
			doctor.PracticeStartTime = *req.PracticeStartTime
		}
		if req.PracticeEndTime != nil {
			doctor.PracticeEndTime = *req.PracticeEndTime
		}
		if req.MaxPatients != nil {
			doctor.MaxPatients = *req.MaxPatients
		}
		if req.IsActive != nil {
			doctor.IsActive = req.IsActive
		}
		return u.doctorRepo.Update(tx, doctor)
	})
	if err != nil {
		return nil, err
	}

	// Quota or availability may have changed; drop the cached counters.
	u.board.Invalidate(ctx, id)
	u.log.Infof("Doctor updated: id=%d", id)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Delete(ctx context.Context, id int) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doctor, err := u.doctorRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}
		return u.doctorRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}

	u.board.Invalidate(ctx, id)
	u.log.Infof("Doctor deleted: id=%d", id)
	return nil
}
