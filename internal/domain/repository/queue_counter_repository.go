package repository

import (
	"time"

	"gorm.io/gorm"
)

type QueueCounterRepository interface {
	// Lock takes the (doctor, date) bucket's row lock for the rest of the
	// transaction, creating the counter row if needed. Every per-bucket
	// decision that must not race (the quota count in particular) has to
	// happen after this lock is held.
	Lock(db *gorm.DB, doctorID int, date time.Time) error
	// NextSequence allocates the next dense sequence number for the
	// (doctor, date) bucket. Must run inside the registration transaction;
	// it locks the counter row so concurrent callers serialize per bucket.
	NextSequence(db *gorm.DB, doctorID int, date time.Time) (int, error)
}
