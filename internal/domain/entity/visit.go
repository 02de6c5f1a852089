package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VisitStatus represents a visit's position in the queue lifecycle.
type VisitStatus string

const (
	StatusRegistered VisitStatus = "REGISTERED"
	StatusCheckedIn  VisitStatus = "CHECKED_IN"
	StatusWaiting    VisitStatus = "WAITING"
	StatusCalled     VisitStatus = "CALLED"
	StatusInService  VisitStatus = "IN_SERVICE"
	StatusFinished   VisitStatus = "FINISHED"
	StatusCancelled  VisitStatus = "CANCELLED"
	StatusNoShow     VisitStatus = "NO_SHOW"
)

// transitionSources maps a target status to the statuses it may be reached
// from. A transition is keyed by its target because the API carries the
// desired status, not an action verb.
var transitionSources = map[VisitStatus][]VisitStatus{
	StatusCheckedIn: {StatusRegistered},
	StatusWaiting:   {StatusCheckedIn},
	StatusCalled:    {StatusWaiting},
	StatusInService: {StatusCalled},
	StatusFinished:  {StatusInService},
	StatusCancelled: {StatusRegistered, StatusCheckedIn, StatusWaiting, StatusCalled},
	StatusNoShow:    {StatusRegistered, StatusCheckedIn, StatusWaiting},
}

// KnownStatus reports whether s is a member of the lifecycle enumeration.
func KnownStatus(s VisitStatus) bool {
	if s == StatusRegistered {
		return true
	}
	_, ok := transitionSources[s]
	return ok
}

// ValidTransition reports whether a visit may move from one status to another.
func ValidTransition(from, to VisitStatus) bool {
	for _, src := range transitionSources[to] {
		if src == from {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends the active lifecycle. Terminal
// visits are archived and removed from the active table.
func (s VisitStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled || s == StatusNoShow
}

// Visit is one patient's presence in a day's queue for a doctor.
type Visit struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      int         `gorm:"not null;uniqueIndex:uq_visits_doctor_date_seq,priority:1;index:idx_visits_doctor_date,priority:1" json:"doctor_id"`
	ServiceID     int         `gorm:"not null;index" json:"service_id"`
	VisitDate     time.Time   `gorm:"type:date;not null;uniqueIndex:uq_visits_doctor_date_seq,priority:2;index:idx_visits_doctor_date,priority:2" json:"visit_date"`
	QueueSequence int         `gorm:"not null;uniqueIndex:uq_visits_doctor_date_seq,priority:3" json:"queue_sequence"`
	QueueNumber   string      `gorm:"type:varchar(20);not null" json:"queue_number"`
	Status        VisitStatus `gorm:"type:varchar(12);not null;index" json:"status"`
	TRegister     time.Time   `gorm:"column:t_register;not null" json:"t_register"`
	TCheckin      *time.Time  `gorm:"column:t_checkin" json:"t_checkin,omitempty"`
	TCalled       *time.Time  `gorm:"column:t_called" json:"t_called,omitempty"`
	TInService    *time.Time  `gorm:"column:t_in_service" json:"t_in_service,omitempty"`
	TFinished     *time.Time  `gorm:"column:t_finished" json:"t_finished,omitempty"`
	Notes         string      `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Visit) TableName() string {
	return "visits"
}

// FormatTicket renders the canonical display ticket: PREFIX-CODE-NNN with the
// sequence zero-padded to at least three digits, e.g. U-1-001.
func FormatTicket(prefix, doctorCode string, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", strings.ToUpper(prefix), doctorCode, seq)
}

// LastStamp returns the latest lifecycle timestamp set on the visit. Used to
// clamp new stamps so clock skew never produces a backwards timeline.
func (v *Visit) LastStamp() time.Time {
	last := v.TRegister
	for _, t := range []*time.Time{v.TCheckin, v.TCalled, v.TInService, v.TFinished} {
		if t != nil && t.After(last) {
			last = *t
		}
	}
	return last
}

// Stamp records the lifecycle timestamp for the target status, exactly once.
// A stamp earlier than the latest existing one is clamped to it. Moving to
// WAITING has no stamp of its own; cancel and no-show reuse t_finished as the
// terminal stamp.
func (v *Visit) Stamp(target VisitStatus, at time.Time) {
	if last := v.LastStamp(); at.Before(last) {
		at = last
	}
	switch target {
	case StatusCheckedIn:
		if v.TCheckin == nil {
			v.TCheckin = &at
		}
	case StatusCalled:
		if v.TCalled == nil {
			v.TCalled = &at
		}
	case StatusInService:
		if v.TInService == nil {
			v.TInService = &at
		}
	case StatusFinished, StatusCancelled, StatusNoShow:
		if v.TFinished == nil {
			v.TFinished = &at
		}
	}
}
