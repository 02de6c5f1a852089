package entity

import "time"

// QueueCounter is the per-(doctor, date) sequence allocator row. The
// registration transaction locks it with SELECT ... FOR UPDATE so sequence
// numbers stay dense and gap-free under concurrent registrations, while
// different doctors never serialize against each other.
type QueueCounter struct {
	DoctorID     int       `gorm:"primaryKey" json:"doctor_id"`
	VisitDate    time.Time `gorm:"type:date;primaryKey" json:"visit_date"`
	LastSequence int       `gorm:"not null;default:0" json:"last_sequence"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (QueueCounter) TableName() string {
	return "queue_counters"
}
