package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/delivery/http/middleware"
	"poliklinik-queue-backend/internal/domain/entity"
	"poliklinik-queue-backend/internal/service"
	"poliklinik-queue-backend/internal/usecase"
	"poliklinik-queue-backend/pkg/response"
	"poliklinik-queue-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type QueueHandler struct {
	registrationUsecase usecase.RegistrationUsecase
	transitionUsecase   usecase.TransitionUsecase
	validator           *validator.CustomValidator
}

func NewQueueHandler(
	registrationUsecase usecase.RegistrationUsecase,
	transitionUsecase usecase.TransitionUsecase,
	validator *validator.CustomValidator,
) *QueueHandler {
	return &QueueHandler{
		registrationUsecase: registrationUsecase,
		transitionUsecase:   transitionUsecase,
		validator:           validator,
	}
}

func (h *QueueHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	visit, err := h.registrationUsecase.Register(r.Context(), &req)
	if err != nil {
		var rejection *service.Rejection
		switch {
		case errors.As(err, &rejection):
			response.Rejection(w, string(rejection.Reason), rejection.Detail)
		case errors.Is(err, usecase.ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrServiceInactive):
			response.Rejection(w, "DOCTOR_UNAVAILABLE", "Service is not accepting registrations")
		case errors.Is(err, usecase.ErrMissingAge):
			response.Rejection(w, "MALFORMED_INPUT", "Either age or date_of_birth is required")
		default:
			response.InternalServerError(w, "Failed to register visit", middleware.GetRequestIDFromContext(r.Context()))
		}
		return
	}

	response.Success(w, http.StatusCreated, "Visit registered successfully", visit)
}

func (h *QueueHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	visitID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid visit ID")
		return
	}

	var req dto.UpdateVisitStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	visit, err := h.transitionUsecase.Transition(r.Context(), visitID, entity.VisitStatus(req.Status), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrVisitNotFound):
			response.NotFound(w, "Visit not found")
		case errors.Is(err, usecase.ErrUnknownStatus):
			response.Rejection(w, "MALFORMED_INPUT", "Unknown target status")
		case errors.Is(err, usecase.ErrInvalidTransition):
			response.Rejection(w, "INVALID_TRANSITION", "Transition not allowed from current status")
		default:
			response.InternalServerError(w, "Failed to update visit status", middleware.GetRequestIDFromContext(r.Context()))
		}
		return
	}

	response.Success(w, http.StatusOK, "Visit status updated successfully", visit)
}
