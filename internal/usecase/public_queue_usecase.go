package usecase

import (
	"context"
	"fmt"
	"time"

	"poliklinik-queue-backend/internal/converter"
	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/repository"
	"poliklinik-queue-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PublicQueueUsecase interface {
	ListToday(ctx context.Context, filter repository.VisitFilter) (*dto.QueueListResponse, error)
	Board(ctx context.Context) (*dto.BoardResponse, error)
	VisitQR(ctx context.Context, visitID uuid.UUID) (*dto.VisitQRResponse, error)
}

type publicQueueUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	visitRepo   repository.VisitRepository
	serviceRepo repository.ServiceRepository
	doctorRepo  repository.DoctorRepository
	board       *service.QueueBoardService
	location    *time.Location
}

func NewPublicQueueUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	visitRepo repository.VisitRepository,
	serviceRepo repository.ServiceRepository,
	doctorRepo repository.DoctorRepository,
	board *service.QueueBoardService,
	location *time.Location,
) PublicQueueUsecase {
	return &publicQueueUsecase{
		db:          db,
		log:         log,
		visitRepo:   visitRepo,
		serviceRepo: serviceRepo,
		doctorRepo:  doctorRepo,
		board:       board,
		location:    location,
	}
}

// ListToday returns today's active queue in ticket order, optionally
// filtered by clinic and/or doctor.
func (u *publicQueueUsecase) ListToday(ctx context.Context, filter repository.VisitFilter) (*dto.QueueListResponse, error) {
	today := u.today()
	visits, err := u.visitRepo.FindByDate(u.db.WithContext(ctx), today, filter)
	if err != nil {
		u.log.Warnf("Failed to list today's queue: %+v", err)
		return nil, err
	}
	return &dto.QueueListResponse{
		Date:   today.Format("2006-01-02"),
		Visits: converter.VisitsToResponses(visits),
		Total:  len(visits),
	}, nil
}

// Board returns the public display state from the Redis mirror.
func (u *publicQueueUsecase) Board(ctx context.Context) (*dto.BoardResponse, error) {
	services, err := u.serviceRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	doctors, err := u.doctorRepo.FindActive(u.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	called, remaining, err := u.board.Snapshot(ctx, services, doctors)
	if err != nil {
		u.log.Warnf("Failed to read queue board: %+v", err)
		return nil, err
	}
	return &dto.BoardResponse{Called: called, Remaining: remaining}, nil
}

// VisitQR returns the canonical payload encoded into a visit's QR code.
func (u *publicQueueUsecase) VisitQR(ctx context.Context, visitID uuid.UUID) (*dto.VisitQRResponse, error) {
	visit, err := u.visitRepo.FindByID(u.db.WithContext(ctx), visitID)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}
	return &dto.VisitQRResponse{
		VisitID:     visit.ID.String(),
		QueueNumber: visit.QueueNumber,
		Payload:     fmt.Sprintf("visit:%s", visit.ID),
	}, nil
}

func (u *publicQueueUsecase) today() time.Time {
	now := time.Now().In(u.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
