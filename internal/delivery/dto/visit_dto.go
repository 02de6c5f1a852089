package dto

import "time"

// RegisterVisitRequest is the registration desk payload. Either age or
// date_of_birth must be present; the usecase enforces that because the
// validator cannot express the either-or.
type RegisterVisitRequest struct {
	PatientName      string  `json:"patient_name" validate:"required,max=255"`
	NIK              *string `json:"nik,omitempty" validate:"omitempty,len=16,numeric"`
	Gender           string  `json:"gender" validate:"required,oneof=MALE FEMALE"`
	Age              *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`
	DateOfBirth      string  `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Insurance        string  `json:"insurance,omitempty" validate:"omitempty,max=50"`
	DoctorID         int     `json:"doctor_id" validate:"required,gt=0"`
	ServiceID        int     `json:"service_id" validate:"required,gt=0"`
	ConsultationTime string  `json:"consultation_time,omitempty" validate:"omitempty,datetime=15:04"`
	VisitDate        string  `json:"visit_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes            string  `json:"notes,omitempty"`
}

// UpdateVisitStatusRequest moves a visit to a target lifecycle status.
type UpdateVisitStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes,omitempty"`
}

// VisitResponse is the visit projection shared by the registration, status
// and public queue endpoints.
type VisitResponse struct {
	ID            string     `json:"id"`
	QueueNumber   string     `json:"queue_number"`
	QueueSequence int        `json:"queue_sequence"`
	VisitDate     string     `json:"visit_date"`
	Status        string     `json:"status"`
	PatientName   string     `json:"patient_name"`
	DoctorName    string     `json:"doctor_name,omitempty"`
	DoctorCode    string     `json:"doctor_code,omitempty"`
	ServiceName   string     `json:"service_name,omitempty"`
	ServicePrefix string     `json:"service_prefix,omitempty"`
	TRegister     time.Time  `json:"t_register"`
	TCheckin      *time.Time `json:"t_checkin,omitempty"`
	TCalled       *time.Time `json:"t_called,omitempty"`
	TInService    *time.Time `json:"t_in_service,omitempty"`
	TFinished     *time.Time `json:"t_finished,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

type QueueListResponse struct {
	Date   string          `json:"date"`
	Visits []VisitResponse `json:"visits"`
	Total  int             `json:"total"`
}

// VisitQRResponse carries the encoded payload a display or printer turns into
// a scannable code. Image rasterization happens client side.
type VisitQRResponse struct {
	VisitID     string `json:"visit_id"`
	QueueNumber string `json:"queue_number"`
	Payload     string `json:"payload"`
}
