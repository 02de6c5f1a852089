package handler

import (
	"errors"
	"net/http"

	"poliklinik-queue-backend/internal/delivery/http/middleware"
	"poliklinik-queue-backend/internal/usecase"
	"poliklinik-queue-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase) *PatientHandler {
	return &PatientHandler{patientUsecase: patientUsecase}
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid patient ID")
		return
	}

	patient, err := h.patientUsecase.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.List(r.Context(), r.URL.Query().Get("nik"))
	if err != nil {
		response.InternalServerError(w, "Failed to list patients", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}
