package service

import (
	"fmt"

	"poliklinik-queue-backend/internal/domain/entity"
)

// RejectionReason identifies why a registration was refused.
type RejectionReason string

const (
	ReasonDoctorUnavailable    RejectionReason = "DOCTOR_UNAVAILABLE"
	ReasonAgeOutOfRange        RejectionReason = "AGE_OUT_OF_RANGE"
	ReasonGenderMismatch       RejectionReason = "GENDER_MISMATCH"
	ReasonOutsidePracticeHours RejectionReason = "OUTSIDE_PRACTICE_HOURS"
	ReasonQuotaExhausted       RejectionReason = "QUOTA_EXHAUSTED"
)

// Rejection is a failed eligibility rule. It implements error so the
// coordinator can return it straight up the stack.
type Rejection struct {
	Reason RejectionReason
	Detail string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("registration rejected: %s (%s)", r.Reason, r.Detail)
}

// EligibilityInput carries everything the rules need, already loaded. The
// checker performs no I/O: same input, same result, so registration and a
// dry-run preview can share it and the result never depends on later
// master-data edits.
type EligibilityInput struct {
	Service          *entity.Service
	Doctor           *entity.Doctor
	Gender           entity.Gender
	Age              int
	ConsultationTime string
	// ActiveVisits is the count of non-terminal visits already registered
	// for (doctor, visit date).
	ActiveVisits int64
}

// CheckEligibility evaluates the registration rules in fixed order and
// returns the first failure, or nil when the patient may register.
func CheckEligibility(in EligibilityInput) *Rejection {
	if in.Doctor == nil || !in.Doctor.Active() || !in.Doctor.BoundTo(in.Service.ID) {
		return &Rejection{
			Reason: ReasonDoctorUnavailable,
			Detail: "doctor is not available for this service",
		}
	}

	if in.Age < in.Service.MinAge || in.Age > in.Service.MaxAge {
		return &Rejection{
			Reason: ReasonAgeOutOfRange,
			Detail: fmt.Sprintf("age %d outside allowed range %d-%d", in.Age, in.Service.MinAge, in.Service.MaxAge),
		}
	}

	if !in.Service.GenderRestriction.Admits(in.Gender) {
		return &Rejection{
			Reason: ReasonGenderMismatch,
			Detail: fmt.Sprintf("service only accepts %s patients", in.Service.GenderRestriction),
		}
	}

	inWindow, err := in.Doctor.InPracticeWindow(in.ConsultationTime)
	if err != nil || !inWindow {
		return &Rejection{
			Reason: ReasonOutsidePracticeHours,
			Detail: fmt.Sprintf("consultation time %s outside practice hours %s-%s", in.ConsultationTime, in.Doctor.PracticeStartTime, in.Doctor.PracticeEndTime),
		}
	}

	if in.ActiveVisits >= int64(in.Doctor.MaxPatients) {
		return &Rejection{
			Reason: ReasonQuotaExhausted,
			Detail: fmt.Sprintf("doctor's daily quota of %d patients is full", in.Doctor.MaxPatients),
		}
	}

	return nil
}
