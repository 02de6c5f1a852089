package dto

import "time"

type CreateDoctorRequest struct {
	Name              string `json:"name" validate:"required,max=100"`
	DoctorCode        string `json:"doctor_code" validate:"required,max=10,alphanum"`
	ServiceID         int    `json:"service_id" validate:"required,gt=0"`
	PracticeStartTime string `json:"practice_start_time" validate:"required,datetime=15:04"`
	PracticeEndTime   string `json:"practice_end_time" validate:"required,datetime=15:04"`
	MaxPatients       int    `json:"max_patients" validate:"required,gt=0"`
}

type UpdateDoctorRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,max=100"`
	ServiceID         *int    `json:"service_id,omitempty" validate:"omitempty,gt=0"`
	PracticeStartTime *string `json:"practice_start_time,omitempty" validate:"omitempty,datetime=15:04"`
	PracticeEndTime   *string `json:"practice_end_time,omitempty" validate:"omitempty,datetime=15:04"`
	MaxPatients       *int    `json:"max_patients,omitempty" validate:"omitempty,gt=0"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

type DoctorResponse struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	DoctorCode        string    `json:"doctor_code"`
	ServiceID         int       `json:"service_id"`
	ServiceName       string    `json:"service_name,omitempty"`
	PracticeStartTime string    `json:"practice_start_time"`
	PracticeEndTime   string    `json:"practice_end_time"`
	MaxPatients       int       `json:"max_patients"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
