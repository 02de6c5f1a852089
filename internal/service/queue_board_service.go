package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"poliklinik-queue-backend/internal/domain/entity"
	"poliklinik-queue-backend/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// Redis key prefixes for the public queue board
	remainingKeyPrefix = "queue:remaining:"
	calledKeyPrefix    = "queue:called:"

	boardOpTimeout = 5 * time.Second
)

// decrRemainingScript decrements a doctor's remaining-quota counter without
// letting it go negative. The floor matters because the counter is a display
// mirror; the database quota check is the authority.
var decrRemainingScript = redis.NewScript(`
	local remaining = redis.call('DECR', KEYS[1])
	if remaining < 0 then
		redis.call('INCR', KEYS[1])
		return 0
	end
	return remaining
`)

// BoardEntry is what the public display shows per service: the ticket most
// recently called to a consultation room.
type BoardEntry struct {
	ServiceID   int       `json:"service_id"`
	ServiceName string    `json:"service_name"`
	QueueNumber string    `json:"queue_number"`
	DoctorCode  string    `json:"doctor_code"`
	DoctorName  string    `json:"doctor_name"`
	CalledAt    time.Time `json:"called_at"`
}

// RemainingEntry is the per-doctor slots-left counter shown on the board.
type RemainingEntry struct {
	DoctorID   int    `json:"doctor_id"`
	DoctorCode string `json:"doctor_code"`
	DoctorName string `json:"doctor_name"`
	Remaining  int    `json:"remaining"`
}

// QueueBoardService mirrors today's queue state into Redis for the public
// display: remaining quota per doctor and the last called ticket per service.
// The mirror is never authoritative; the database is. Keys expire at local
// midnight and are rebuilt by SyncToday, which also runs on startup and after
// any doctor or service mutation.
type QueueBoardService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	doctorRepo  repository.DoctorRepository
	visitRepo   repository.VisitRepository
	location    *time.Location
}

func NewQueueBoardService(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	visitRepo repository.VisitRepository,
	location *time.Location,
) *QueueBoardService {
	return &QueueBoardService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		doctorRepo:  doctorRepo,
		visitRepo:   visitRepo,
		location:    location,
	}
}

// SyncToday rebuilds every active doctor's remaining-quota counter from the
// database. Called on startup and whenever the mirror may be stale.
func (s *QueueBoardService) SyncToday(ctx context.Context) error {
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	start := time.Now()
	today := s.today()

	doctors, err := s.doctorRepo.FindActive(s.db.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("load active doctors: %w", err)
	}

	pipe := s.redisClient.TxPipeline()
	ttl := s.ttlToMidnight()
	for i := range doctors {
		doctor := &doctors[i]
		active, err := s.visitRepo.CountActiveByDoctorAndDate(s.db.WithContext(ctx), doctor.ID, today)
		if err != nil {
			return fmt.Errorf("count active visits for doctor %d: %w", doctor.ID, err)
		}
		remaining := doctor.MaxPatients - int(active)
		if remaining < 0 {
			remaining = 0
		}
		pipe.Set(ctx, s.remainingKey(doctor.ID, today), remaining, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("queue board pipeline exec: %w", err)
	}

	s.log.Infof("Queue board synced: %d doctors in %v", len(doctors), time.Since(start))
	return nil
}

// ReserveSlot decrements the remaining counter after a successful
// registration. Best effort: a Redis failure never fails the registration.
func (s *QueueBoardService) ReserveSlot(ctx context.Context, doctorID int, date time.Time) {
	ctx, cancel := context.WithTimeout(ctx, boardOpTimeout)
	defer cancel()

	if _, err := decrRemainingScript.Run(ctx, s.redisClient, []string{s.remainingKey(doctorID, date)}).Int(); err != nil {
		s.log.Warnf("Failed to decrement board counter for doctor %d (non-fatal): %+v", doctorID, err)
	}
}

// ReleaseSlot restores a slot after a visit leaves the active table. Any
// terminal transition frees quota because only non-terminal visits count
// against it.
func (s *QueueBoardService) ReleaseSlot(ctx context.Context, doctorID int, date time.Time) {
	ctx, cancel := context.WithTimeout(ctx, boardOpTimeout)
	defer cancel()

	if err := s.redisClient.Incr(ctx, s.remainingKey(doctorID, date)).Err(); err != nil {
		s.log.Warnf("Failed to restore board counter for doctor %d (non-fatal): %+v", doctorID, err)
	}
}

// PublishCalled writes the last-called ticket for the visit's service. Best
// effort, invoked on every call transition.
func (s *QueueBoardService) PublishCalled(ctx context.Context, visit *entity.Visit) {
	ctx, cancel := context.WithTimeout(ctx, boardOpTimeout)
	defer cancel()

	calledAt := time.Now().UTC()
	if visit.TCalled != nil {
		calledAt = *visit.TCalled
	}
	entry := BoardEntry{
		ServiceID:   visit.ServiceID,
		ServiceName: visit.Service.Name,
		QueueNumber: visit.QueueNumber,
		DoctorCode:  visit.Doctor.DoctorCode,
		DoctorName:  visit.Doctor.Name,
		CalledAt:    calledAt,
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		s.log.Warnf("Failed to marshal board entry for visit %s: %+v", visit.ID, err)
		return
	}
	if err := s.redisClient.Set(ctx, s.calledKey(visit.ServiceID), payload, s.ttlToMidnight()).Err(); err != nil {
		s.log.Warnf("Failed to publish board entry for service %d (non-fatal): %+v", visit.ServiceID, err)
	}
}

// Invalidate drops a doctor's counter and re-syncs the board. Called after
// master-data mutations so a stale quota never survives a doctor edit.
func (s *QueueBoardService) Invalidate(ctx context.Context, doctorID int) {
	ctx, cancel := context.WithTimeout(ctx, boardOpTimeout)
	defer cancel()

	if err := s.redisClient.Del(ctx, s.remainingKey(doctorID, s.today())).Err(); err != nil {
		s.log.Warnf("Failed to invalidate board counter for doctor %d: %+v", doctorID, err)
	}
	if err := s.SyncToday(ctx); err != nil {
		s.log.Warnf("Queue board re-sync after invalidation failed: %+v", err)
	}
}

// Snapshot returns the current board: last-called entries for the given
// services and remaining counters for the given doctors. Missing keys are
// skipped, not errors.
func (s *QueueBoardService) Snapshot(ctx context.Context, services []entity.Service, doctors []entity.Doctor) ([]BoardEntry, []RemainingEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, boardOpTimeout)
	defer cancel()

	today := s.today()
	entries := make([]BoardEntry, 0, len(services))
	for _, svc := range services {
		raw, err := s.redisClient.Get(ctx, s.calledKey(svc.ID)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read board entry for service %d: %w", svc.ID, err)
		}
		var entry BoardEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			s.log.Warnf("Corrupt board entry for service %d, skipping: %+v", svc.ID, err)
			continue
		}
		entries = append(entries, entry)
	}

	remaining := make([]RemainingEntry, 0, len(doctors))
	for _, doctor := range doctors {
		value, err := s.redisClient.Get(ctx, s.remainingKey(doctor.ID, today)).Int()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read board counter for doctor %d: %w", doctor.ID, err)
		}
		remaining = append(remaining, RemainingEntry{
			DoctorID:   doctor.ID,
			DoctorCode: doctor.DoctorCode,
			DoctorName: doctor.Name,
			Remaining:  value,
		})
	}

	return entries, remaining, nil
}

func (s *QueueBoardService) remainingKey(doctorID int, date time.Time) string {
	return fmt.Sprintf("%s%d:%s", remainingKeyPrefix, doctorID, date.Format("2006-01-02"))
}

func (s *QueueBoardService) calledKey(serviceID int) string {
	return fmt.Sprintf("%s%d", calledKeyPrefix, serviceID)
}

func (s *QueueBoardService) today() time.Time {
	now := time.Now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *QueueBoardService) ttlToMidnight() time.Duration {
	now := time.Now().In(s.location)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location).AddDate(0, 0, 1)
	ttl := time.Until(midnight)
	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}
