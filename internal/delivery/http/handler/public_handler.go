package handler

import (
	"errors"
	"net/http"
	"strconv"

	"poliklinik-queue-backend/internal/delivery/http/middleware"
	"poliklinik-queue-backend/internal/domain/repository"
	"poliklinik-queue-backend/internal/usecase"
	"poliklinik-queue-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PublicHandler struct {
	publicQueueUsecase usecase.PublicQueueUsecase
}

func NewPublicHandler(publicQueueUsecase usecase.PublicQueueUsecase) *PublicHandler {
	return &PublicHandler{publicQueueUsecase: publicQueueUsecase}
}

// ListTodayQueue serves the public queue listing, filterable by service
// and/or doctor.
func (h *PublicHandler) ListTodayQueue(w http.ResponseWriter, r *http.Request) {
	var filter repository.VisitFilter
	if raw := r.URL.Query().Get("service_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Rejection(w, "MALFORMED_INPUT", "Invalid service_id")
			return
		}
		filter.ServiceID = &id
	}
	if raw := r.URL.Query().Get("doctor_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Rejection(w, "MALFORMED_INPUT", "Invalid doctor_id")
			return
		}
		filter.DoctorID = &id
	}

	queue, err := h.publicQueueUsecase.ListToday(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list queue", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusOK, "Queue retrieved successfully", queue)
}

// Board serves the public display snapshot.
func (h *PublicHandler) Board(w http.ResponseWriter, r *http.Request) {
	board, err := h.publicQueueUsecase.Board(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to read queue board", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusOK, "Queue board retrieved successfully", board)
}

// VisitQR serves the payload encoded into a visit's ticket QR code.
func (h *PublicHandler) VisitQR(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	visitID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Rejection(w, "MALFORMED_INPUT", "Invalid visit ID")
		return
	}

	qr, err := h.publicQueueUsecase.VisitQR(r.Context(), visitID)
	if err != nil {
		if errors.Is(err, usecase.ErrVisitNotFound) {
			response.NotFound(w, "Visit not found")
			return
		}
		response.InternalServerError(w, "Failed to build QR payload", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusOK, "QR payload retrieved successfully", qr)
}
