package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"poliklinik-queue-backend/internal/converter"
	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/entity"
	"poliklinik-queue-backend/internal/domain/repository"
	"poliklinik-queue-backend/internal/service"
	"poliklinik-queue-backend/pkg/metrics"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrServiceInactive  = errors.New("service is not accepting registrations")
	ErrMissingAge       = errors.New("either age or date_of_birth is required")
	ErrSequenceConflict = errors.New("sequence allocation conflict persisted after retries")
)

// maxSequenceRetries bounds how often a registration retries after losing a
// sequence race to the unique constraint backstop.
const maxSequenceRetries = 5

type RegistrationUsecase interface {
	Register(ctx context.Context, req *dto.RegisterVisitRequest) (*dto.VisitResponse, error)
}

type registrationUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	serviceRepo repository.ServiceRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	visitRepo   repository.VisitRepository
	counterRepo repository.QueueCounterRepository
	board       *service.QueueBoardService
	collector   *metrics.Collector
	location    *time.Location
}

func NewRegistrationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	visitRepo repository.VisitRepository,
	counterRepo repository.QueueCounterRepository,
	board *service.QueueBoardService,
	collector *metrics.Collector,
	location *time.Location,
) RegistrationUsecase {
	return &registrationUsecase{
		db:          db,
		log:         log,
		serviceRepo: serviceRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		visitRepo:   visitRepo,
		counterRepo: counterRepo,
		board:       board,
		collector:   collector,
		location:    location,
	}
}

// Register creates a visit in a single transaction: resolve the patient,
// load master data, run eligibility, allocate the sequence, insert the visit.
// Eligibility is evaluated exactly once; later master-data edits do not
// invalidate visits that already passed it.
func (u *registrationUsecase) Register(ctx context.Context, req *dto.RegisterVisitRequest) (*dto.VisitResponse, error) {
	if req.Age == nil && req.DateOfBirth == "" {
		return nil, ErrMissingAge
	}

	visitDate, err := u.resolveVisitDate(req.VisitDate)
	if err != nil {
		return nil, err
	}
	consultationTime := req.ConsultationTime
	if consultationTime == "" {
		consultationTime = time.Now().In(u.location).Format("15:04")
	}

	var visit *entity.Visit
	for attempt := 0; ; attempt++ {
		visit, err = u.registerOnce(ctx, req, visitDate, consultationTime)
		if err == nil {
			break
		}
		// Lost a sequence race to the unique constraint backstop: the
		// counter lock normally prevents this, so a bounded re-run with a
		// fresh transaction is enough.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			u.collector.SequenceRetriesTotal.Inc()
			if attempt+1 >= maxSequenceRetries {
				u.log.Errorf("Sequence conflict persisted after %d attempts for doctor %d: %+v", maxSequenceRetries, req.DoctorID, err)
				return nil, ErrSequenceConflict
			}
			u.log.Warnf("Sequence conflict for doctor %d, retrying (attempt %d): %+v", req.DoctorID, attempt+1, err)
			continue
		}
		return nil, err
	}

	u.collector.VisitsRegisteredTotal.Inc()
	u.board.ReserveSlot(ctx, visit.DoctorID, visitDate)

	full, err := u.visitRepo.FindByID(u.db.WithContext(ctx), visit.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload visit %s: %+v", visit.ID, err)
		return converter.VisitToResponse(visit), nil
	}

	u.log.Infof("Visit registered: id=%s, ticket=%s, doctor=%d, seq=%d", full.ID, full.QueueNumber, full.DoctorID, full.QueueSequence)
	return converter.VisitToResponse(full), nil
}

func (u *registrationUsecase) registerOnce(ctx context.Context, req *dto.RegisterVisitRequest, visitDate time.Time, consultationTime string) (*entity.Visit, error) {
	var visit *entity.Visit

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		visit, err = u.registerLocked(tx, req, visitDate, consultationTime)
		return err
	})
	if err != nil {
		return nil, err
	}
	return visit, nil
}

// registerLocked is the body of the registration transaction. The bucket lock
// is taken before the quota count: under READ COMMITTED two concurrent
// registrations would otherwise both read the same stale count at
// max_patients - 1 and both pass the quota rule.
func (u *registrationUsecase) registerLocked(tx *gorm.DB, req *dto.RegisterVisitRequest, visitDate time.Time, consultationTime string) (*entity.Visit, error) {
	svc, err := u.serviceRepo.FindByID(tx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if !svc.Active() {
		return nil, ErrServiceInactive
	}

	doctor, err := u.doctorRepo.FindByID(tx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.resolvePatient(tx, req)
	if err != nil {
		return nil, err
	}

	if err := u.counterRepo.Lock(tx, doctor.ID, visitDate); err != nil {
		return nil, err
	}

	activeVisits, err := u.visitRepo.CountActiveByDoctorAndDate(tx, doctor.ID, visitDate)
	if err != nil {
		return nil, err
	}

	if rejection := service.CheckEligibility(service.EligibilityInput{
		Service:          svc,
		Doctor:           doctor,
		Gender:           entity.Gender(req.Gender),
		Age:              patient.AgeAt(time.Now().In(u.location)),
		ConsultationTime: consultationTime,
		ActiveVisits:     activeVisits,
	}); rejection != nil {
		return nil, rejection
	}

	seq, err := u.counterRepo.NextSequence(tx, doctor.ID, visitDate)
	if err != nil {
		return nil, err
	}

	visit := &entity.Visit{
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		ServiceID:     svc.ID,
		VisitDate:     visitDate,
		QueueSequence: seq,
		QueueNumber:   entity.FormatTicket(svc.Prefix, doctor.DoctorCode, seq),
		Status:        entity.StatusRegistered,
		TRegister:     time.Now().UTC(),
		Notes:         req.Notes,
	}
	if err := u.visitRepo.Create(tx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// resolvePatient finds the patient by natural key (NIK first, then the
// uppercased name) or creates one inside the registration transaction.
func (u *registrationUsecase) resolvePatient(tx *gorm.DB, req *dto.RegisterVisitRequest) (*entity.Patient, error) {
	var existing *entity.Patient
	var err error
	if req.NIK != nil && *req.NIK != "" {
		existing, err = u.patientRepo.FindByNIK(tx, *req.NIK)
	} else {
		existing, err = u.patientRepo.FindByName(tx, req.PatientName)
	}
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	patient := &entity.Patient{
		NIK:       req.NIK,
		Name:      strings.ToUpper(strings.TrimSpace(req.PatientName)),
		Gender:    entity.Gender(req.Gender),
		Insurance: req.Insurance,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		patient.DateOfBirth = &dob
		patient.Age = patient.AgeAt(time.Now().In(u.location))
	} else {
		patient.Age = *req.Age
	}
	if err := u.patientRepo.Create(tx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (u *registrationUsecase) resolveVisitDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().In(u.location)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}
