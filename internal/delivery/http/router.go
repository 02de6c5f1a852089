package http

import (
	"net/http"

	"poliklinik-queue-backend/internal/delivery/http/handler"
	"poliklinik-queue-backend/internal/delivery/http/middleware"
	"poliklinik-queue-backend/pkg/metrics"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	queueHandler      *handler.QueueHandler
	publicHandler     *handler.PublicHandler
	analyticsHandler  *handler.AnalyticsHandler
	serviceHandler    *handler.ServiceHandler
	doctorHandler     *handler.DoctorHandler
	patientHandler    *handler.PatientHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	metricsMiddleware *middleware.MetricsMiddleware
}

func NewRouter(
	queueHandler *handler.QueueHandler,
	publicHandler *handler.PublicHandler,
	analyticsHandler *handler.AnalyticsHandler,
	serviceHandler *handler.ServiceHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		queueHandler:      queueHandler,
		publicHandler:     publicHandler,
		analyticsHandler:  analyticsHandler,
		serviceHandler:    serviceHandler,
		doctorHandler:     doctorHandler,
		patientHandler:    patientHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		metricsMiddleware: metricsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check and metrics
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	api.Handle("/metrics", metrics.MetricsHandler()).Methods(http.MethodGet)

	// Public read surface (waiting room displays, patient phones)
	api.HandleFunc("/queue/today", r.publicHandler.ListTodayQueue).Methods(http.MethodGet)
	api.HandleFunc("/queue/board", r.publicHandler.Board).Methods(http.MethodGet)
	api.HandleFunc("/visits/{id}/qr", r.publicHandler.VisitQR).Methods(http.MethodGet)

	// Staff routes (registration desk, nurses, doctors)
	staff := api.PathPrefix("").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireRole(middleware.RoleAdmin, middleware.RoleStaff, middleware.RoleDoctor))
	staff.HandleFunc("/queue/register", r.queueHandler.Register).Methods(http.MethodPost)
	staff.HandleFunc("/queue/{id}/status", r.queueHandler.UpdateStatus).Methods(http.MethodPut)
	staff.HandleFunc("/analytics/dashboard", r.analyticsHandler.Dashboard).Methods(http.MethodGet)
	staff.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)

	// Admin routes (master data)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireRole(middleware.RoleAdmin))

	admin.HandleFunc("/services", r.serviceHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services", r.serviceHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", r.serviceHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Delete).Methods(http.MethodDelete)

	r.router.Use(middleware.RequestID)
	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
