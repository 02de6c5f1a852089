package entity

import (
	"strings"
	"time"
)

// GenderRestriction limits who may register to a service (poli).
type GenderRestriction string

const (
	RestrictionMale   GenderRestriction = "MALE"
	RestrictionFemale GenderRestriction = "FEMALE"
	RestrictionNone   GenderRestriction = "NONE"
)

// Service represents an outpatient clinic (poli), e.g. Poli Umum.
type Service struct {
	ID                int               `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string            `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Prefix            string            `gorm:"type:varchar(4);uniqueIndex;not null" json:"prefix"`
	MinAge            int               `gorm:"not null;default:0" json:"min_age"`
	MaxAge            int               `gorm:"not null;default:100" json:"max_age"`
	GenderRestriction GenderRestriction `gorm:"type:varchar(6);not null;default:'NONE'" json:"gender_restriction"`
	IsActive          *bool             `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors []Doctor `gorm:"foreignKey:ServiceID" json:"doctors,omitempty"`
}

func (Service) TableName() string {
	return "services"
}

// NormalizePrefix uppercases the ticket prefix. Stored exactly once, on write.
func (s *Service) NormalizePrefix() {
	s.Prefix = strings.ToUpper(strings.TrimSpace(s.Prefix))
}

func (s *Service) Active() bool {
	return s.IsActive != nil && *s.IsActive
}

// Admits reports whether the restriction allows the given patient gender.
func (r GenderRestriction) Admits(g Gender) bool {
	switch r {
	case RestrictionMale:
		return g == GenderMale
	case RestrictionFemale:
		return g == GenderFemale
	default:
		return true
	}
}
