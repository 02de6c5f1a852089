package usecase

import (
	"errors"
	"testing"
	"time"

	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/entity"
	"poliklinik-queue-backend/internal/domain/repository"
	"poliklinik-queue-backend/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeServiceRepo struct {
	service *entity.Service
}

func (f *fakeServiceRepo) Create(db *gorm.DB, svc *entity.Service) error { return nil }
func (f *fakeServiceRepo) FindByID(db *gorm.DB, id int) (*entity.Service, error) {
	return f.service, nil
}
func (f *fakeServiceRepo) FindByName(db *gorm.DB, name string) (*entity.Service, error) {
	return nil, nil
}
func (f *fakeServiceRepo) FindByPrefix(db *gorm.DB, prefix string) (*entity.Service, error) {
	return nil, nil
}
func (f *fakeServiceRepo) FindAll(db *gorm.DB) ([]entity.Service, error)  { return nil, nil }
func (f *fakeServiceRepo) Update(db *gorm.DB, svc *entity.Service) error  { return nil }
func (f *fakeServiceRepo) Delete(db *gorm.DB, id int) error               { return nil }
func (f *fakeServiceRepo) CountActiveDoctors(db *gorm.DB, serviceID int) (int64, error) {
	return 0, nil
}

type fakeDoctorRepo struct {
	doctor *entity.Doctor
}

func (f *fakeDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error { return nil }
func (f *fakeDoctorRepo) FindByID(db *gorm.DB, id int) (*entity.Doctor, error) {
	return f.doctor, nil
}
func (f *fakeDoctorRepo) FindByCode(db *gorm.DB, code string) (*entity.Doctor, error) {
	return nil, nil
}
func (f *fakeDoctorRepo) FindAll(db *gorm.DB) ([]entity.Doctor, error)    { return nil, nil }
func (f *fakeDoctorRepo) FindActive(db *gorm.DB) ([]entity.Doctor, error) { return nil, nil }
func (f *fakeDoctorRepo) Update(db *gorm.DB, doctor *entity.Doctor) error { return nil }
func (f *fakeDoctorRepo) Delete(db *gorm.DB, id int) error                { return nil }

type fakePatientRepo struct {
	byNIK *entity.Patient

	created *entity.Patient
}

func (f *fakePatientRepo) Create(db *gorm.DB, patient *entity.Patient) error {
	patient.ID = uuid.New()
	f.created = patient
	return nil
}
func (f *fakePatientRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) FindByNIK(db *gorm.DB, nik string) (*entity.Patient, error) {
	return f.byNIK, nil
}
func (f *fakePatientRepo) FindByName(db *gorm.DB, name string) (*entity.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) FindAll(db *gorm.DB, nik string) ([]entity.Patient, error) {
	return nil, nil
}

// countingVisitRepo records the order of per-bucket calls so the tests can
// verify the quota count happens under the bucket lock.
type countingVisitRepo struct {
	fakeVisitRepo
	activeCount int64
	calls       *[]string
}

func (f *countingVisitRepo) CountActiveByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time) (int64, error) {
	*f.calls = append(*f.calls, "count")
	return f.activeCount, nil
}

func (f *countingVisitRepo) Create(db *gorm.DB, visit *entity.Visit) error {
	*f.calls = append(*f.calls, "insert")
	visit.ID = uuid.New()
	f.fakeVisitRepo.visit = visit
	return nil
}

type fakeCounterRepo struct {
	next  int
	calls *[]string
}

func (f *fakeCounterRepo) Lock(db *gorm.DB, doctorID int, date time.Time) error {
	*f.calls = append(*f.calls, "lock")
	return nil
}

func (f *fakeCounterRepo) NextSequence(db *gorm.DB, doctorID int, date time.Time) (int, error) {
	*f.calls = append(*f.calls, "sequence")
	return f.next, nil
}

type registrationFixture struct {
	usecase  *registrationUsecase
	visits   *countingVisitRepo
	counters *fakeCounterRepo
	patients *fakePatientRepo
	calls    []string
}

func newRegistrationFixture(activeCount int64) *registrationFixture {
	active := true
	f := &registrationFixture{}
	f.visits = &countingVisitRepo{activeCount: activeCount, calls: &f.calls}
	f.counters = &fakeCounterRepo{next: 3, calls: &f.calls}
	f.patients = &fakePatientRepo{}
	f.usecase = &registrationUsecase{
		serviceRepo: &fakeServiceRepo{service: &entity.Service{
			ID:                1,
			Name:              "Poli Umum",
			Prefix:            "U",
			MinAge:            0,
			MaxAge:            100,
			GenderRestriction: entity.RestrictionNone,
			IsActive:          &active,
		}},
		doctorRepo: &fakeDoctorRepo{doctor: &entity.Doctor{
			ID:                1,
			Name:              "dr. Sari",
			DoctorCode:        "1",
			ServiceID:         1,
			PracticeStartTime: "00:00",
			PracticeEndTime:   "23:59",
			MaxPatients:       3,
			IsActive:          &active,
		}},
		patientRepo: f.patients,
		visitRepo:   f.visits,
		counterRepo: f.counters,
		location:    time.UTC,
	}
	return f
}

func registerRequest() *dto.RegisterVisitRequest {
	age := 30
	return &dto.RegisterVisitRequest{
		PatientName: "Budi Santoso",
		Gender:      "MALE",
		Age:         &age,
		DoctorID:    1,
		ServiceID:   1,
	}
}

var _ repository.VisitRepository = (*countingVisitRepo)(nil)
var _ repository.QueueCounterRepository = (*fakeCounterRepo)(nil)

func TestRegisterLockedAllocatesSequenceAndTicket(t *testing.T) {
	f := newRegistrationFixture(0)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	visit, err := f.usecase.registerLocked(nil, registerRequest(), date, "09:00")
	if err != nil {
		t.Fatalf("registerLocked() error: %v", err)
	}
	if visit.QueueSequence != 3 {
		t.Errorf("sequence = %d, want 3", visit.QueueSequence)
	}
	if visit.QueueNumber != "U-1-003" {
		t.Errorf("ticket = %q, want U-1-003", visit.QueueNumber)
	}
	if visit.Status != entity.StatusRegistered {
		t.Errorf("status = %s, want REGISTERED", visit.Status)
	}
	if visit.TRegister.IsZero() {
		t.Error("t_register not stamped")
	}
	if f.patients.created == nil {
		t.Error("new patient was not created")
	} else if f.patients.created.Name != "BUDI SANTOSO" {
		t.Errorf("patient name = %q, want uppercased BUDI SANTOSO", f.patients.created.Name)
	}
}

// The bucket lock must be held before the quota is counted. Counting first
// lets two concurrent registrations both read max_patients - 1 and both pass
// the quota rule, overshooting the doctor's daily cap.
func TestRegisterLockedCountsQuotaUnderBucketLock(t *testing.T) {
	f := newRegistrationFixture(0)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, err := f.usecase.registerLocked(nil, registerRequest(), date, "09:00"); err != nil {
		t.Fatalf("registerLocked() error: %v", err)
	}

	lockAt, countAt := -1, -1
	for i, call := range f.calls {
		switch call {
		case "lock":
			if lockAt == -1 {
				lockAt = i
			}
		case "count":
			if countAt == -1 {
				countAt = i
			}
		}
	}
	if lockAt == -1 || countAt == -1 {
		t.Fatalf("calls = %v, want both lock and count", f.calls)
	}
	if lockAt > countAt {
		t.Errorf("calls = %v, want the bucket lock before the quota count", f.calls)
	}
}

func TestRegisterLockedQuotaExhausted(t *testing.T) {
	f := newRegistrationFixture(3) // at the doctor's MaxPatients
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := f.usecase.registerLocked(nil, registerRequest(), date, "09:00")
	var rejection *service.Rejection
	if !errors.As(err, &rejection) {
		t.Fatalf("err = %v, want a rejection", err)
	}
	if rejection.Reason != service.ReasonQuotaExhausted {
		t.Errorf("reason = %s, want QUOTA_EXHAUSTED", rejection.Reason)
	}

	for _, call := range f.calls {
		if call == "sequence" || call == "insert" {
			t.Errorf("calls = %v, want no sequence allocation or insert after a quota rejection", f.calls)
			break
		}
	}
}

func TestRegisterLockedInactiveService(t *testing.T) {
	f := newRegistrationFixture(0)
	inactive := false
	f.usecase.serviceRepo.(*fakeServiceRepo).service.IsActive = &inactive
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, err := f.usecase.registerLocked(nil, registerRequest(), date, "09:00"); !errors.Is(err, ErrServiceInactive) {
		t.Errorf("err = %v, want ErrServiceInactive", err)
	}
}

func TestRegisterLockedReusesPatientByNIK(t *testing.T) {
	f := newRegistrationFixture(0)
	existing := &entity.Patient{ID: uuid.New(), Name: "BUDI SANTOSO", Gender: entity.GenderMale, Age: 30}
	f.patients.byNIK = existing

	req := registerRequest()
	nik := "1234567890123456"
	req.NIK = &nik
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	visit, err := f.usecase.registerLocked(nil, req, date, "09:00")
	if err != nil {
		t.Fatalf("registerLocked() error: %v", err)
	}
	if visit.PatientID != existing.ID {
		t.Errorf("patient id = %s, want the existing patient %s", visit.PatientID, existing.ID)
	}
	if f.patients.created != nil {
		t.Error("a duplicate patient row was created")
	}
}

func TestRegisterMissingAge(t *testing.T) {
	f := newRegistrationFixture(0)

	req := registerRequest()
	req.Age = nil
	req.DateOfBirth = ""

	if _, err := f.usecase.Register(nil, req); !errors.Is(err, ErrMissingAge) {
		t.Errorf("err = %v, want ErrMissingAge", err)
	}
}
