package converter

import (
	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/entity"
)

func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	return &dto.DoctorResponse{
		ID:                doctor.ID,
		Name:              doctor.Name,
		DoctorCode:        doctor.DoctorCode,
		ServiceID:         doctor.ServiceID,
		ServiceName:       doctor.Service.Name,
		PracticeStartTime: doctor.PracticeStartTime,
		PracticeEndTime:   doctor.PracticeEndTime,
		MaxPatients:       doctor.MaxPatients,
		IsActive:          doctor.Active(),
		CreatedAt:         doctor.CreatedAt,
		UpdatedAt:         doctor.UpdatedAt,
	}
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		responses = append(responses, *DoctorToResponse(&doctors[i]))
	}
	return responses
}
