package usecase

import (
	"testing"
	"time"

	"poliklinik-queue-backend/internal/domain/entity"

	"github.com/google/uuid"
)

func ts(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func tsPtr(hour, minute int) *time.Time {
	t := ts(hour, minute)
	return &t
}

func finishedVisit(serviceID, doctorID int, serviceName, doctorName string, reg time.Time, checkin, called, finished *time.Time) entity.VisitHistory {
	return entity.VisitHistory{
		ID:            uuid.New(),
		SourceVisitID: uuid.New(),
		ServiceID:     serviceID,
		DoctorID:      doctorID,
		Service:       entity.Service{ID: serviceID, Name: serviceName},
		Doctor:        entity.Doctor{ID: doctorID, Name: doctorName},
		Status:        entity.StatusFinished,
		TRegister:     reg,
		TCheckin:      checkin,
		TCalled:       called,
		TFinished:     finished,
	}
}

func TestComputeDashboardEmpty(t *testing.T) {
	resp := computeDashboard(nil, time.UTC)
	if resp.TotalSuccessful != 0 {
		t.Errorf("TotalSuccessful = %d, want 0", resp.TotalSuccessful)
	}
	if resp.AvgWaitMinutes != 0 || resp.AvgServiceMinutes != 0 || resp.AvgWaitInPeakHours != 0 {
		t.Errorf("averages = %v/%v/%v, want all 0",
			resp.AvgWaitMinutes, resp.AvgServiceMinutes, resp.AvgWaitInPeakHours)
	}
	if len(resp.PatientsByClinic) != 0 || len(resp.TopBusyHours) != 0 || len(resp.TopDoctors) != 0 {
		t.Error("expected empty breakdowns for empty history")
	}
}

func TestComputeDashboardAverages(t *testing.T) {
	// Visit A: checked in 09:00, called 09:10, finished 09:30.
	// Visit B: checked in 09:05, called 09:25, finished 09:55.
	// Wait = (10 + 20) / 2 = 15.00, service = (20 + 30) / 2 = 25.00.
	histories := []entity.VisitHistory{
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(8, 50), tsPtr(9, 0), tsPtr(9, 10), tsPtr(9, 30)),
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(8, 55), tsPtr(9, 5), tsPtr(9, 25), tsPtr(9, 55)),
	}

	resp := computeDashboard(histories, time.UTC)
	if resp.TotalSuccessful != 2 {
		t.Fatalf("TotalSuccessful = %d, want 2", resp.TotalSuccessful)
	}
	if resp.AvgWaitMinutes != 15.00 {
		t.Errorf("AvgWaitMinutes = %v, want 15.00", resp.AvgWaitMinutes)
	}
	if resp.AvgServiceMinutes != 25.00 {
		t.Errorf("AvgServiceMinutes = %v, want 25.00", resp.AvgServiceMinutes)
	}
}

func TestComputeDashboardExcludesUnsuccessful(t *testing.T) {
	cancelled := finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(8, 0), tsPtr(8, 10), tsPtr(8, 20), tsPtr(8, 30))
	cancelled.Status = entity.StatusCancelled
	cancelled.IsCancelled = true

	noshow := finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(8, 5), nil, nil, tsPtr(9, 0))
	noshow.Status = entity.StatusNoShow
	noshow.IsNoShow = true

	histories := []entity.VisitHistory{
		cancelled,
		noshow,
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(8, 50), tsPtr(9, 0), tsPtr(9, 10), tsPtr(9, 30)),
	}

	resp := computeDashboard(histories, time.UTC)
	if resp.TotalSuccessful != 1 {
		t.Errorf("TotalSuccessful = %d, want 1", resp.TotalSuccessful)
	}
	if resp.AvgWaitMinutes != 10.00 {
		t.Errorf("AvgWaitMinutes = %v, want 10.00", resp.AvgWaitMinutes)
	}
}

func TestComputeDashboardSkipsIncompleteStamps(t *testing.T) {
	histories := []entity.VisitHistory{
		// No checkin stamp: excluded from the wait average, still successful.
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(9, 0), nil, tsPtr(9, 10), tsPtr(9, 30)),
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(9, 0), tsPtr(9, 0), tsPtr(9, 20), tsPtr(9, 40)),
	}

	resp := computeDashboard(histories, time.UTC)
	if resp.TotalSuccessful != 2 {
		t.Errorf("TotalSuccessful = %d, want 2", resp.TotalSuccessful)
	}
	if resp.AvgWaitMinutes != 20.00 {
		t.Errorf("AvgWaitMinutes = %v, want 20.00", resp.AvgWaitMinutes)
	}
}

func TestComputeDashboardClinicOrdering(t *testing.T) {
	histories := []entity.VisitHistory{
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(9, 0), tsPtr(9, 0), tsPtr(9, 10), tsPtr(9, 30)),
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(9, 5), tsPtr(9, 5), tsPtr(9, 15), tsPtr(9, 35)),
		finishedVisit(2, 2, "Poli Gigi", "dr. Budi", ts(10, 0), tsPtr(10, 0), tsPtr(10, 10), tsPtr(10, 20)),
	}

	resp := computeDashboard(histories, time.UTC)
	if len(resp.PatientsByClinic) != 2 {
		t.Fatalf("PatientsByClinic len = %d, want 2", len(resp.PatientsByClinic))
	}
	if resp.PatientsByClinic[0].ServiceName != "Poli Umum" || resp.PatientsByClinic[0].Count != 2 {
		t.Errorf("top clinic = %+v, want Poli Umum with 2", resp.PatientsByClinic[0])
	}

	// Per-clinic service averages sort ascending: Gigi 10.00 before Umum 20.00.
	if len(resp.AvgServicePerClinic) != 2 {
		t.Fatalf("AvgServicePerClinic len = %d, want 2", len(resp.AvgServicePerClinic))
	}
	if resp.AvgServicePerClinic[0].ServiceName != "Poli Gigi" || resp.AvgServicePerClinic[0].AvgMinutes != 10.00 {
		t.Errorf("fastest clinic = %+v, want Poli Gigi at 10.00", resp.AvgServicePerClinic[0])
	}
}

func TestComputeDashboardTopBusyHours(t *testing.T) {
	var histories []entity.VisitHistory
	// 3 registrations at 09:xx, 2 at 10:xx, 1 each at 08:xx and 11:xx.
	for _, h := range []int{9, 9, 9, 10, 10, 8, 11} {
		histories = append(histories,
			finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(h, 15), tsPtr(h, 20), tsPtr(h, 30), tsPtr(h, 45)))
	}

	resp := computeDashboard(histories, time.UTC)
	if len(resp.TopBusyHours) != 3 {
		t.Fatalf("TopBusyHours len = %d, want 3", len(resp.TopBusyHours))
	}
	if resp.TopBusyHours[0].Hour != 9 || resp.TopBusyHours[0].Count != 3 {
		t.Errorf("busiest hour = %+v, want hour 9 with 3", resp.TopBusyHours[0])
	}
	if resp.TopBusyHours[1].Hour != 10 || resp.TopBusyHours[1].Count != 2 {
		t.Errorf("second hour = %+v, want hour 10 with 2", resp.TopBusyHours[1])
	}
	// Ties break on the earlier hour.
	if resp.TopBusyHours[2].Hour != 8 {
		t.Errorf("third hour = %+v, want hour 8", resp.TopBusyHours[2])
	}
}

func TestComputeDashboardTopDoctors(t *testing.T) {
	var histories []entity.VisitHistory
	for i := 0; i < 3; i++ {
		histories = append(histories,
			finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(9, i), tsPtr(9, 10), tsPtr(9, 20), tsPtr(9, 30)))
	}
	histories = append(histories,
		finishedVisit(2, 2, "Poli Gigi", "dr. Budi", ts(10, 0), tsPtr(10, 5), tsPtr(10, 10), tsPtr(10, 20)))

	resp := computeDashboard(histories, time.UTC)
	if len(resp.TopDoctors) != 2 {
		t.Fatalf("TopDoctors len = %d, want 2", len(resp.TopDoctors))
	}
	if resp.TopDoctors[0].DoctorName != "dr. Sari" || resp.TopDoctors[0].Count != 3 {
		t.Errorf("top doctor = %+v, want dr. Sari with 3", resp.TopDoctors[0])
	}
}

func TestComputeDashboardPeakHourWait(t *testing.T) {
	var histories []entity.VisitHistory
	// Peak hour is 09 (3 registrations). Two of them checked in at 09:xx
	// with 10 and 20 minute waits; the off-peak visit waits 60 minutes.
	histories = append(histories,
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(9, 0), tsPtr(9, 0), tsPtr(9, 10), tsPtr(9, 30)),
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(9, 5), tsPtr(9, 10), tsPtr(9, 30), tsPtr(9, 50)),
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(9, 10), tsPtr(14, 0), tsPtr(15, 0), tsPtr(15, 30)),
	)

	resp := computeDashboard(histories, time.UTC)
	if len(resp.TopBusyHours) == 0 || resp.TopBusyHours[0].Hour != 9 {
		t.Fatalf("TopBusyHours = %+v, want hour 9 first", resp.TopBusyHours)
	}
	if resp.AvgWaitInPeakHours != 15.00 {
		t.Errorf("AvgWaitInPeakHours = %v, want 15.00", resp.AvgWaitInPeakHours)
	}
}

// Stamps are stored in UTC but the busy-hour buckets must reflect clinic
// wall-clock time: a 02:00 UTC registration in a UTC+7 clinic belongs to the
// 09:00 bucket.
func TestComputeDashboardBusyHoursUseClinicZone(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	histories := []entity.VisitHistory{
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(2, 0), tsPtr(2, 10), tsPtr(2, 20), tsPtr(2, 40)),
		finishedVisit(1, 1, "Poli Umum", "dr. Sari", ts(2, 30), tsPtr(2, 40), tsPtr(2, 50), tsPtr(3, 10)),
	}

	resp := computeDashboard(histories, jakarta)
	if len(resp.TopBusyHours) != 1 {
		t.Fatalf("TopBusyHours len = %d, want 1", len(resp.TopBusyHours))
	}
	if resp.TopBusyHours[0].Hour != 9 {
		t.Errorf("busiest hour = %d, want 9 (02:00 UTC in UTC+7)", resp.TopBusyHours[0].Hour)
	}
	if resp.TopBusyHours[0].Count != 2 {
		t.Errorf("busiest hour count = %d, want 2", resp.TopBusyHours[0].Count)
	}
	// The peak-hour wait filter uses the same zone: both checkins fall in
	// the 09:00 bucket, waits of 10 minutes each.
	if resp.AvgWaitInPeakHours != 10.00 {
		t.Errorf("AvgWaitInPeakHours = %v, want 10.00", resp.AvgWaitInPeakHours)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{15.0, 15.0},
		{16.666666, 16.67},
		{16.664, 16.66},
		{0.005, 0.01},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
