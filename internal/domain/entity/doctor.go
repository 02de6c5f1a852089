package entity

import (
	"fmt"
	"time"
)

// Doctor represents a practicing physician bound to one service (poli).
// Practice times are local wall-clock times of day, stored as HH:MM[:SS].
type Doctor struct {
	ID                int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string    `gorm:"type:varchar(100);not null" json:"name"`
	DoctorCode        string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"doctor_code"`
	ServiceID         int       `gorm:"not null;index" json:"service_id"`
	PracticeStartTime string    `gorm:"type:time;not null" json:"practice_start_time"`
	PracticeEndTime   string    `gorm:"type:time;not null" json:"practice_end_time"`
	MaxPatients       int       `gorm:"not null" json:"max_patients"`
	IsActive          *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) Active() bool {
	return d.IsActive != nil && *d.IsActive
}

// BoundTo reports whether the doctor practices in the given service.
func (d *Doctor) BoundTo(serviceID int) bool {
	return d.ServiceID == serviceID
}

// InPracticeWindow reports whether the clock time (inclusive on both ends)
// falls inside the doctor's practice hours.
func (d *Doctor) InPracticeWindow(clock string) (bool, error) {
	t, err := ParseClock(clock)
	if err != nil {
		return false, err
	}
	start, err := ParseClock(d.PracticeStartTime)
	if err != nil {
		return false, fmt.Errorf("invalid practice start time %q: %w", d.PracticeStartTime, err)
	}
	end, err := ParseClock(d.PracticeEndTime)
	if err != nil {
		return false, fmt.Errorf("invalid practice end time %q: %w", d.PracticeEndTime, err)
	}
	return !t.Before(start) && !t.After(end), nil
}

// ParseClock parses a time of day in HH:MM or HH:MM:SS form.
// Postgres time columns scan back as HH:MM:SS, API input uses HH:MM.
func ParseClock(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}
