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

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{doctorUsecase: doctorUsecase, validator: validator}
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		case errors.Is(err, usecase.ErrDuplicateDoctorCode):
			response.Conflict(w, "Doctor code already exists")
		default:
			response.InternalServerError(w, "Failed to create doctor", middleware.GetRequestIDFromContext(r.Context()))
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid doctor ID")
		return
	}

	doctor, err := h.doctorUsecase.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get doctor", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid doctor ID")
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to update doctor", middleware.GetRequestIDFromContext(r.Context()))
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid doctor ID")
		return
	}

	if err := h.doctorUsecase.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to delete doctor", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}
