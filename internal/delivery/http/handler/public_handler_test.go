package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/repository"
	"poliklinik-queue-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type fakePublicQueueUsecase struct {
	list  *dto.QueueListResponse
	board *dto.BoardResponse
	qr    *dto.VisitQRResponse
	err   error

	gotFilter repository.VisitFilter
}

func (f *fakePublicQueueUsecase) ListToday(ctx context.Context, filter repository.VisitFilter) (*dto.QueueListResponse, error) {
	f.gotFilter = filter
	return f.list, f.err
}

func (f *fakePublicQueueUsecase) Board(ctx context.Context) (*dto.BoardResponse, error) {
	return f.board, f.err
}

func (f *fakePublicQueueUsecase) VisitQR(ctx context.Context, visitID uuid.UUID) (*dto.VisitQRResponse, error) {
	return f.qr, f.err
}

func TestListTodayQueue(t *testing.T) {
	fake := &fakePublicQueueUsecase{list: &dto.QueueListResponse{
		Date: "2025-03-10",
		Visits: []dto.VisitResponse{
			{QueueNumber: "U-1-001", Status: "WAITING"},
			{QueueNumber: "U-1-002", Status: "REGISTERED"},
		},
		Total: 2,
	}}
	h := NewPublicHandler(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/queue/today?service_id=1", nil)
	rec := httptest.NewRecorder()
	h.ListTodayQueue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if fake.gotFilter.ServiceID == nil || *fake.gotFilter.ServiceID != 1 {
		t.Errorf("service filter = %v, want 1", fake.gotFilter.ServiceID)
	}
	if fake.gotFilter.DoctorID != nil {
		t.Errorf("doctor filter = %v, want nil", fake.gotFilter.DoctorID)
	}
}

func TestListTodayQueueBadFilter(t *testing.T) {
	h := NewPublicHandler(&fakePublicQueueUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/queue/today?doctor_id=abc", nil)
	rec := httptest.NewRecorder()
	h.ListTodayQueue(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestVisitQR(t *testing.T) {
	visitID := uuid.New()
	fake := &fakePublicQueueUsecase{qr: &dto.VisitQRResponse{
		VisitID:     visitID.String(),
		QueueNumber: "U-1-001",
		Payload:     "visit:" + visitID.String(),
	}}
	h := NewPublicHandler(fake)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/visits/"+visitID.String()+"/qr", nil)
	req = mux.SetURLVars(req, map[string]string{"id": visitID.String()})
	rec := httptest.NewRecorder()
	h.VisitQR(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestVisitQRNotFound(t *testing.T) {
	fake := &fakePublicQueueUsecase{err: usecase.ErrVisitNotFound}
	h := NewPublicHandler(fake)

	visitID := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/visits/"+visitID+"/qr", nil)
	req = mux.SetURLVars(req, map[string]string{"id": visitID})
	rec := httptest.NewRecorder()
	h.VisitQR(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
