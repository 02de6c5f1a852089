package dto

import "time"

type PatientResponse struct {
	ID          string     `json:"id"`
	NIK         string     `json:"nik,omitempty"`
	Name        string     `json:"name"`
	Gender      string     `json:"gender"`
	Age         int        `json:"age"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Insurance   string     `json:"insurance,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
