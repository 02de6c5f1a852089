package dto

// DashboardResponse summarizes the archived visit history. All durations are
// minutes rounded to two decimals; empty denominators yield zero.
type DashboardResponse struct {
	TotalSuccessful     int          `json:"total_successful"`
	AvgWaitMinutes      float64      `json:"avg_wait_minutes"`
	AvgServiceMinutes   float64      `json:"avg_service_minutes"`
	AvgWaitInPeakHours  float64      `json:"avg_wait_in_peak_hours"`
	PatientsByClinic    []ClinicStat `json:"patients_by_clinic"`
	TopBusyHours        []HourStat   `json:"top_busy_hours"`
	TopDoctors          []DoctorStat `json:"top_doctors"`
	AvgServicePerClinic []ClinicStat `json:"avg_service_per_clinic"`
}

type ClinicStat struct {
	ServiceID   int     `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Count       int     `json:"count,omitempty"`
	AvgMinutes  float64 `json:"avg_minutes,omitempty"`
}

type HourStat struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type DoctorStat struct {
	DoctorID   int    `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
	Count      int    `json:"count"`
}
