package entity

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Patient is deduplicated at registration time by natural key:
// NIK when present, otherwise the uppercased name.
type Patient struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	NIK         *string    `gorm:"type:char(16);uniqueIndex" json:"nik,omitempty"`
	Name        string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Gender      Gender     `gorm:"type:varchar(6);not null" json:"gender"`
	Age         int        `gorm:"not null" json:"age"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Insurance   string     `gorm:"type:varchar(50)" json:"insurance,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Visits []Visit `gorm:"foreignKey:PatientID" json:"visits,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// AgeAt returns the patient's age at the given moment, preferring the date
// of birth over the stored age snapshot.
func (p *Patient) AgeAt(at time.Time) int {
	if p.DateOfBirth == nil {
		return p.Age
	}
	dob := *p.DateOfBirth
	age := at.Year() - dob.Year()
	if at.YearDay() < dob.YearDay() {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}
