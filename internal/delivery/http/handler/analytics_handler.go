package handler

import (
	"net/http"

	"poliklinik-queue-backend/internal/delivery/http/middleware"
	"poliklinik-queue-backend/internal/usecase"
	"poliklinik-queue-backend/pkg/response"
)

type AnalyticsHandler struct {
	analyticsUsecase usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(analyticsUsecase usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUsecase: analyticsUsecase}
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.analyticsUsecase.Dashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to compute dashboard", middleware.GetRequestIDFromContext(r.Context()))
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
