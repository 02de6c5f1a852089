package entity

import (
	"time"

	"github.com/google/uuid"
)

// VisitHistory is the permanent archive row written when a visit reaches a
// terminal status. SourceVisitID is unique so a retried terminal commit
// cannot produce a second archive row.
type VisitHistory struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SourceVisitID uuid.UUID   `gorm:"type:uuid;uniqueIndex;not null" json:"source_visit_id"`
	PatientID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      int         `gorm:"not null;index" json:"doctor_id"`
	ServiceID     int         `gorm:"not null;index" json:"service_id"`
	VisitDate     time.Time   `gorm:"type:date;not null;index" json:"visit_date"`
	QueueSequence int         `gorm:"not null" json:"queue_sequence"`
	QueueNumber   string      `gorm:"type:varchar(20);not null" json:"queue_number"`
	Status        VisitStatus `gorm:"type:varchar(12);not null;index" json:"status"`
	TRegister     time.Time   `gorm:"column:t_register;not null" json:"t_register"`
	TCheckin      *time.Time  `gorm:"column:t_checkin" json:"t_checkin,omitempty"`
	TCalled       *time.Time  `gorm:"column:t_called" json:"t_called,omitempty"`
	TInService    *time.Time  `gorm:"column:t_in_service" json:"t_in_service,omitempty"`
	TFinished     *time.Time  `gorm:"column:t_finished" json:"t_finished,omitempty"`
	Notes         string      `gorm:"type:text" json:"notes,omitempty"`
	IsCancelled   bool        `gorm:"not null;default:false" json:"is_cancelled"`
	IsNoShow      bool        `gorm:"column:is_noshow;not null;default:false" json:"is_noshow"`
	ArchivedAt    time.Time   `gorm:"autoCreateTime" json:"archived_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (VisitHistory) TableName() string {
	return "visit_histories"
}

// NewVisitHistory mirrors a terminal visit into its archive row.
func NewVisitHistory(v *Visit) *VisitHistory {
	return &VisitHistory{
		SourceVisitID: v.ID,
		PatientID:     v.PatientID,
		DoctorID:      v.DoctorID,
		ServiceID:     v.ServiceID,
		VisitDate:     v.VisitDate,
		QueueSequence: v.QueueSequence,
		QueueNumber:   v.QueueNumber,
		Status:        v.Status,
		TRegister:     v.TRegister,
		TCheckin:      v.TCheckin,
		TCalled:       v.TCalled,
		TInService:    v.TInService,
		TFinished:     v.TFinished,
		Notes:         v.Notes,
		IsCancelled:   v.Status == StatusCancelled,
		IsNoShow:      v.Status == StatusNoShow,
	}
}

// Successful reports whether the archived visit counts toward analytics:
// finished normally, not cancelled, not a no-show.
func (h *VisitHistory) Successful() bool {
	return h.Status == StatusFinished && !h.IsCancelled && !h.IsNoShow
}
