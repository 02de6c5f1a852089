package converter

import (
	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/entity"
)

func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	return &dto.ServiceResponse{
		ID:                service.ID,
		Name:              service.Name,
		Prefix:            service.Prefix,
		MinAge:            service.MinAge,
		MaxAge:            service.MaxAge,
		GenderRestriction: string(service.GenderRestriction),
		IsActive:          service.Active(),
		CreatedAt:         service.CreatedAt,
		UpdatedAt:         service.UpdatedAt,
	}
}

func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		responses = append(responses, *ServiceToResponse(&services[i]))
	}
	return responses
}
