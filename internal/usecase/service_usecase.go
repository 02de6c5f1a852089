package usecase

import (
	"context"
	"errors"
	"strings"

	"poliklinik-queue-backend/internal/converter"
	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/entity"
	"poliklinik-queue-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDuplicateService  = errors.New("service name or prefix already exists")
	ErrServiceReferenced = errors.New("service is still referenced by active doctors")
)

type ServiceUsecase interface {
	Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	Get(ctx context.Context, id int) (*dto.ServiceResponse, error)
	List(ctx context.Context) (*dto.ServiceListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Delete(ctx context.Context, id int) error
}

type serviceUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	serviceRepo repository.ServiceRepository
}

func NewServiceUsecase(db *gorm.DB, log *logrus.Logger, serviceRepo repository.ServiceRepository) ServiceUsecase {
	return &serviceUsecase{db: db, log: log, serviceRepo: serviceRepo}
}

func (u *serviceUsecase) Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	svc := &entity.Service{
		Name:              strings.TrimSpace(req.Name),
		Prefix:            req.Prefix,
		MinAge:            0,
		MaxAge:            100,
		GenderRestriction: entity.RestrictionNone,
	}
	svc.NormalizePrefix()
	if req.MinAge != nil {
		svc.MinAge = *req.MinAge
	}
	if req.MaxAge != nil {
		svc.MaxAge = *req.MaxAge
	}
	if req.GenderRestriction != "" {
		svc.GenderRestriction = entity.GenderRestriction(req.GenderRestriction)
	}
	active := true
	svc.IsActive = &active

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if existing, err := u.serviceRepo.FindByName(tx, svc.Name); err != nil {
			return err
		} else if existing != nil {
			return ErrDuplicateService
		}
		if existing, err := u.serviceRepo.FindByPrefix(tx, svc.Prefix); err != nil {
			return err
		} else if existing != nil {
			return ErrDuplicateService
		}
		return u.serviceRepo.Create(tx, svc)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateService
		}
		return nil, err
	}

	u.log.Infof("Service created: id=%d, name=%s, prefix=%s", svc.ID, svc.Name, svc.Prefix)
	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) Get(ctx context.Context, id int) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) List(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}

func (u *serviceUsecase) Update(ctx context.Context, id int, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	var svc *entity.Service
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		svc, err = u.serviceRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if svc == nil {
			return ErrServiceNotFound
		}
		if req.Name != nil {
			svc.Name = strings.TrimSpace(*req.Name)
		}
		if req.Prefix != nil {
			svc.Prefix = *req.Prefix
			svc.NormalizePrefix()
		}
		if req.MinAge != nil {
			svc.MinAge = *req.MinAge
		}
		if req.MaxAge != nil {
			svc.MaxAge = *req.MaxAge
		}
		if req.GenderRestriction != nil {
			svc.GenderRestriction = entity.GenderRestriction(*req.GenderRestriction)
		}
		if req.IsActive != nil {
			svc.IsActive = req.IsActive
		}
		return u.serviceRepo.Update(tx, svc)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateService
		}
		return nil, err
	}

	u.log.Infof("Service updated: id=%d", id)
	return converter.ServiceToResponse(svc), nil
}

// Delete removes a service unless an active doctor still references it.
func (u *serviceUsecase) Delete(ctx context.Context, id int) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		svc, err := u.serviceRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if svc == nil {
			return ErrServiceNotFound
		}
		doctors, err := u.serviceRepo.CountActiveDoctors(tx, id)
		if err != nil {
			return err
		}
		if doctors > 0 {
			return ErrServiceReferenced
		}
		return u.serviceRepo.Delete(tx, id)
	})
	if err != nil {
		return err
	}

	u.log.Infof("Service deleted: id=%d", id)
	return nil
}
