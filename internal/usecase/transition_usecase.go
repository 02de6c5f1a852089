package usecase

import (
	"context"
	"errors"
	"time"

	"poliklinik-queue-backend/internal/converter"
	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/entity"
	"poliklinik-queue-backend/internal/domain/repository"
	"poliklinik-queue-backend/internal/service"
	"poliklinik-queue-backend/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrVisitNotFound     = errors.New("visit not found")
	ErrUnknownStatus     = errors.New("unknown visit status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type TransitionUsecase interface {
	Transition(ctx context.Context, visitID uuid.UUID, target entity.VisitStatus, notes string) (*dto.VisitResponse, error)
}

type transitionUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	visitRepo   repository.VisitRepository
	historyRepo repository.VisitHistoryRepository
	board       *service.QueueBoardService
	collector   *metrics.Collector
}

func NewTransitionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	visitRepo repository.VisitRepository,
	historyRepo repository.VisitHistoryRepository,
	board *service.QueueBoardService,
	collector *metrics.Collector,
) TransitionUsecase {
	return &transitionUsecase{
		db:          db,
		log:         log,
		visitRepo:   visitRepo,
		historyRepo: historyRepo,
		board:       board,
		collector:   collector,
	}
}

// Transition moves a visit to the target status under a row lock. The
// lifecycle timestamp is stamped exactly once, a repeated transition to the
// current status is a no-op, and terminal targets archive the visit in the
// same transaction so a reader sees it either active or archived, never both.
func (u *transitionUsecase) Transition(ctx context.Context, visitID uuid.UUID, target entity.VisitStatus, notes string) (*dto.VisitResponse, error) {
	if !entity.KnownStatus(target) || target == entity.StatusRegistered {
		return nil, ErrUnknownStatus
	}

	var result entity.Visit
	var archived, applied bool

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, archived, applied, err = u.applyTransition(tx, visitID, target, notes)
		return err
	})
	if err != nil {
		return nil, err
	}

	if applied {
		u.collector.TransitionsTotal.WithLabelValues(string(target)).Inc()
		if target.IsTerminal() {
			u.collector.VisitsArchivedTotal.WithLabelValues(string(target)).Inc()
			u.board.ReleaseSlot(ctx, result.DoctorID, result.VisitDate)
		}
	}

	if archived {
		u.log.Infof("Visit archived: id=%s, ticket=%s, status=%s", result.ID, result.QueueNumber, result.Status)
		history, err := u.historyRepo.FindBySourceVisitID(u.db.WithContext(ctx), visitID)
		if err == nil && history != nil {
			return converter.VisitHistoryToResponse(history), nil
		}
		return converter.VisitToResponse(&result), nil
	}

	full, err := u.visitRepo.FindByID(u.db.WithContext(ctx), result.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload visit %s: %+v", result.ID, err)
		return converter.VisitToResponse(&result), nil
	}
	if target == entity.StatusCalled {
		u.board.PublishCalled(ctx, full)
	}

	u.log.Infof("Visit transitioned: id=%s, ticket=%s, status=%s", full.ID, full.QueueNumber, full.Status)
	return converter.VisitToResponse(full), nil
}

// applyTransition is the body of the transition transaction: row lock, state
// machine check, stamping, and the terminal archive+delete. applied is true
// only when the visit actually changed state; archived is true whenever the
// result came from (or went into) the archive.
func (u *transitionUsecase) applyTransition(tx *gorm.DB, visitID uuid.UUID, target entity.VisitStatus, notes string) (result entity.Visit, archived, applied bool, err error) {
	visit, err := u.visitRepo.FindByIDForUpdate(tx, visitID)
	if err != nil {
		return entity.Visit{}, false, false, err
	}
	if visit == nil {
		// The visit may already be archived. A repeat of the same terminal
		// transition stays idempotent: return the archive row without
		// inserting anything.
		history, err := u.historyRepo.FindBySourceVisitID(tx, visitID)
		if err != nil {
			return entity.Visit{}, false, false, err
		}
		if history != nil && history.Status == target {
			return historyToVisit(history), true, false, nil
		}
		if history != nil {
			return entity.Visit{}, false, false, ErrInvalidTransition
		}
		return entity.Visit{}, false, false, ErrVisitNotFound
	}

	if visit.Status == target {
		return *visit, false, false, nil
	}
	if !entity.ValidTransition(visit.Status, target) {
		return entity.Visit{}, false, false, ErrInvalidTransition
	}

	visit.Stamp(target, time.Now().UTC())
	visit.Status = target
	if notes != "" {
		visit.Notes = notes
	}

	if target.IsTerminal() {
		if err := u.historyRepo.Archive(tx, entity.NewVisitHistory(visit)); err != nil {
			return entity.Visit{}, false, false, err
		}
		if err := u.visitRepo.Delete(tx, visit.ID); err != nil {
			return entity.Visit{}, false, false, err
		}
		return *visit, true, true, nil
	}

	if err := u.visitRepo.Save(tx, visit); err != nil {
		return entity.Visit{}, false, false, err
	}
	return *visit, false, true, nil
}

// historyToVisit rebuilds the visit shape from its archive row, for the
// idempotent repeat of a terminal transition.
func historyToVisit(h *entity.VisitHistory) entity.Visit {
	return entity.Visit{
		ID:            h.SourceVisitID,
		PatientID:     h.PatientID,
		DoctorID:      h.DoctorID,
		ServiceID:     h.ServiceID,
		VisitDate:     h.VisitDate,
		QueueSequence: h.QueueSequence,
		QueueNumber:   h.QueueNumber,
		Status:        h.Status,
		TRegister:     h.TRegister,
		TCheckin:      h.TCheckin,
		TCalled:       h.TCalled,
		TInService:    h.TInService,
		TFinished:     h.TFinished,
		Notes:         h.Notes,
	}
}
