package converter

import (
	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/entity"
)

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	nik := ""
	if patient.NIK != nil {
		nik = *patient.NIK
	}
	return &dto.PatientResponse{
		ID:          patient.ID.String(),
		NIK:         nik,
		Name:        patient.Name,
		Gender:      string(patient.Gender),
		Age:         patient.Age,
		DateOfBirth: patient.DateOfBirth,
		Insurance:   patient.Insurance,
		CreatedAt:   patient.CreatedAt,
	}
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}
