package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/entity"
	"poliklinik-queue-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AnalyticsUsecase interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type analyticsUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	historyRepo repository.VisitHistoryRepository
	location    *time.Location
}

func NewAnalyticsUsecase(db *gorm.DB, log *logrus.Logger, historyRepo repository.VisitHistoryRepository, location *time.Location) AnalyticsUsecase {
	return &analyticsUsecase{db: db, log: log, historyRepo: historyRepo, location: location}
}

// Dashboard computes summary statistics from the visit archive. Only the
// archive is read; active visits never influence analytics.
func (u *analyticsUsecase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	histories, err := u.historyRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load visit histories: %+v", err)
		return nil, err
	}
	return computeDashboard(histories, u.location), nil
}

const topBusyHourCount = 3
const topDoctorCount = 5

// computeDashboard aggregates the archive rows. Stamps are stored in UTC, so
// hour buckets convert to the clinic's zone first; the wall-clock hours are
// what the front desk reasons about.
func computeDashboard(histories []entity.VisitHistory, loc *time.Location) *dto.DashboardResponse {
	successful := make([]entity.VisitHistory, 0, len(histories))
	for i := range histories {
		if histories[i].Successful() {
			successful = append(successful, histories[i])
		}
	}

	resp := &dto.DashboardResponse{
		TotalSuccessful:     len(successful),
		PatientsByClinic:    []dto.ClinicStat{},
		TopBusyHours:        []dto.HourStat{},
		TopDoctors:          []dto.DoctorStat{},
		AvgServicePerClinic: []dto.ClinicStat{},
	}

	resp.AvgWaitMinutes = meanMinutes(successful, func(h *entity.VisitHistory) (time.Time, *time.Time) {
		return deref(h.TCheckin), h.TCalled
	})
	resp.AvgServiceMinutes = meanMinutes(successful, func(h *entity.VisitHistory) (time.Time, *time.Time) {
		return deref(h.TCalled), h.TFinished
	})

	// Clinic counts, descending.
	clinicCounts := map[int]*dto.ClinicStat{}
	for i := range successful {
		h := &successful[i]
		stat, ok := clinicCounts[h.ServiceID]
		if !ok {
			stat = &dto.ClinicStat{ServiceID: h.ServiceID, ServiceName: h.Service.Name}
			clinicCounts[h.ServiceID] = stat
		}
		stat.Count++
	}
	for _, stat := range clinicCounts {
		resp.PatientsByClinic = append(resp.PatientsByClinic, *stat)
	}
	sort.Slice(resp.PatientsByClinic, func(i, j int) bool {
		a, b := resp.PatientsByClinic[i], resp.PatientsByClinic[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.ServiceName < b.ServiceName
	})

	// Top registration hours, in clinic wall-clock time.
	hourCounts := map[int]int{}
	for i := range successful {
		hourCounts[successful[i].TRegister.In(loc).Hour()]++
	}
	hours := make([]dto.HourStat, 0, len(hourCounts))
	for hour, count := range hourCounts {
		hours = append(hours, dto.HourStat{Hour: hour, Count: count})
	}
	sort.Slice(hours, func(i, j int) bool {
		if hours[i].Count != hours[j].Count {
			return hours[i].Count > hours[j].Count
		}
		return hours[i].Hour < hours[j].Hour
	})
	if len(hours) > topBusyHourCount {
		hours = hours[:topBusyHourCount]
	}
	resp.TopBusyHours = hours

	// Top doctors by successful visits.
	doctorCounts := map[int]*dto.DoctorStat{}
	for i := range successful {
		h := &successful[i]
		stat, ok := doctorCounts[h.DoctorID]
		if !ok {
			stat = &dto.DoctorStat{DoctorID: h.DoctorID, DoctorName: h.Doctor.Name}
			doctorCounts[h.DoctorID] = stat
		}
		stat.Count++
	}
	doctors := make([]dto.DoctorStat, 0, len(doctorCounts))
	for _, stat := range doctorCounts {
		doctors = append(doctors, *stat)
	}
	sort.Slice(doctors, func(i, j int) bool {
		if doctors[i].Count != doctors[j].Count {
			return doctors[i].Count > doctors[j].Count
		}
		return doctors[i].DoctorName < doctors[j].DoctorName
	})
	if len(doctors) > topDoctorCount {
		doctors = doctors[:topDoctorCount]
	}
	resp.TopDoctors = doctors

	// Per-clinic mean service duration, ascending.
	type clinicAgg struct {
		name  string
		total float64
		n     int
	}
	clinicService := map[int]*clinicAgg{}
	for i := range successful {
		h := &successful[i]
		if h.TCalled == nil || h.TFinished == nil {
			continue
		}
		minutes := h.TFinished.Sub(*h.TCalled).Minutes()
		if minutes <= 0 {
			continue
		}
		agg, ok := clinicService[h.ServiceID]
		if !ok {
			agg = &clinicAgg{name: h.Service.Name}
			clinicService[h.ServiceID] = agg
		}
		agg.total += minutes
		agg.n++
	}
	for id, agg := range clinicService {
		resp.AvgServicePerClinic = append(resp.AvgServicePerClinic, dto.ClinicStat{
			ServiceID:   id,
			ServiceName: agg.name,
			AvgMinutes:  round2(agg.total / float64(agg.n)),
		})
	}
	sort.Slice(resp.AvgServicePerClinic, func(i, j int) bool {
		a, b := resp.AvgServicePerClinic[i], resp.AvgServicePerClinic[j]
		if a.AvgMinutes != b.AvgMinutes {
			return a.AvgMinutes < b.AvgMinutes
		}
		return a.ServiceName < b.ServiceName
	})

	// Wait time restricted to check-ins inside the busiest hours.
	peakHours := map[int]bool{}
	for _, h := range resp.TopBusyHours {
		peakHours[h.Hour] = true
	}
	peak := make([]entity.VisitHistory, 0, len(successful))
	for i := range successful {
		h := &successful[i]
		if h.TCheckin != nil && peakHours[h.TCheckin.In(loc).Hour()] {
			peak = append(peak, *h)
		}
	}
	resp.AvgWaitInPeakHours = meanMinutes(peak, func(h *entity.VisitHistory) (time.Time, *time.Time) {
		return deref(h.TCheckin), h.TCalled
	})

	return resp
}

// meanMinutes averages (end - start) in minutes over rows where both stamps
// exist and the difference is positive. An empty set yields zero.
func meanMinutes(histories []entity.VisitHistory, stamps func(*entity.VisitHistory) (time.Time, *time.Time)) float64 {
	var total float64
	var n int
	for i := range histories {
		start, end := stamps(&histories[i])
		if start.IsZero() || end == nil {
			continue
		}
		minutes := end.Sub(start).Minutes()
		if minutes <= 0 {
			continue
		}
		total += minutes
		n++
	}
	if n == 0 {
		return 0
	}
	return round2(total / float64(n))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
