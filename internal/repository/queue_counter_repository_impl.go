package repository

import (
	"time"

	"poliklinik-queue-backend/internal/domain/entity"
	domainRepo "poliklinik-queue-backend/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type queueCounterRepository struct{}

func NewQueueCounterRepository() domainRepo.QueueCounterRepository {
	return &queueCounterRepository{}
}

// Lock creates the (doctor, date) counter row if it does not exist yet and
// reads it back under FOR UPDATE. The lock is held until the surrounding
// transaction ends, so all registrations for the bucket serialize here.
func (r *queueCounterRepository) Lock(db *gorm.DB, doctorID int, date time.Time) error {
	seed := &entity.QueueCounter{DoctorID: doctorID, VisitDate: date}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		return err
	}

	var counter entity.QueueCounter
	return db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ? AND visit_date = ?", doctorID, date.Format("2006-01-02")).
		First(&counter).Error
}

// NextSequence allocates the next queue sequence for a (doctor, date) bucket.
// Re-taking an already held row lock is a no-op, so callers that locked the
// bucket earlier in the transaction pay nothing extra. The unique constraint
// on visits(doctor_id, visit_date, queue_sequence) backstops the lock.
func (r *queueCounterRepository) NextSequence(db *gorm.DB, doctorID int, date time.Time) (int, error) {
	day := date.Format("2006-01-02")

	seed := &entity.QueueCounter{DoctorID: doctorID, VisitDate: date}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		return 0, err
	}

	var counter entity.QueueCounter
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ? AND visit_date = ?", doctorID, day).
		First(&counter).Error; err != nil {
		return 0, err
	}

	next := counter.LastSequence + 1
	if err := db.Model(&entity.QueueCounter{}).
		Where("doctor_id = ? AND visit_date = ?", doctorID, day).
		Update("last_sequence", next).Error; err != nil {
		return 0, err
	}

	return next, nil
}
