package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/delivery/http/middleware"
	"poliklinik-queue-backend/internal/usecase"
	"poliklinik-queue-backend/pkg/response"
	"poliklinik-queue-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type ServiceHandler struct {
	serviceUsecase usecase.ServiceUsecase
	validator      *validator.CustomValidator
}

func NewServiceHandler(serviceUsecase usecase.ServiceUsecase, validator *validator.CustomValidator) *ServiceHandler {
	return &ServiceHandler{serviceUsecase: serviceUsecase, validator: validator}
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	svc, err := h.serviceUsecase.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateService) {
			response.Conflict(w, "Service name or prefix already exists")
			return
		}
		response.InternalServerError(w, "Failed to create service", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusCreated, "Service created successfully", svc)
}

func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid service ID")
		return
	}

	svc, err := h.serviceUsecase.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrServiceNotFound) {
			response.NotFound(w, "Service not found")
			return
		}
		response.InternalServerError(w, "Failed to get service", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusOK, "Service retrieved successfully", svc)
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.serviceUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list services", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusOK, "Services retrieved successfully", services)
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid service ID")
		return
	}

	var req dto.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	svc, err := h.serviceUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		case errors.Is(err, usecase.ErrDuplicateService):
			response.Conflict(w, "Service name or prefix already exists")
		default:
			response.InternalServerError(w, "Failed to update service", middleware.GetRequestIDFromContext(r.Context()))
		}
		return
	}

	response.Success(w, http.StatusOK, "Service updated successfully", svc)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid service ID")
		return
	}

	if err := h.serviceUsecase.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		case errors.Is(err, usecase.ErrServiceReferenced):
			response.Conflict(w, "Service is still referenced by active doctors")
		default:
			response.InternalServerError(w, "Failed to delete service", middleware.GetRequestIDFromContext(r.Context()))
		}
		return
	}

	response.Success(w, http.StatusOK, "Service deleted successfully", nil)
}
