package converter

import (
	"poliklinik-queue-backend/internal/delivery/dto"
	"poliklinik-queue-backend/internal/domain/entity"
)

func VisitToResponse(visit *entity.Visit) *dto.VisitResponse {
	return &dto.VisitResponse{
		ID:            visit.ID.String(),
		QueueNumber:   visit.QueueNumber,
		QueueSequence: visit.QueueSequence,
		VisitDate:     visit.VisitDate.Format("2006-01-02"),
		Status:        string(visit.Status),
		PatientName:   visit.Patient.Name,
		DoctorName:    visit.Doctor.Name,
		DoctorCode:    visit.Doctor.DoctorCode,
		ServiceName:   visit.Service.Name,
		ServicePrefix: visit.Service.Prefix,
		TRegister:     visit.TRegister,
		TCheckin:      visit.TCheckin,
		TCalled:       visit.TCalled,
		TInService:    visit.TInService,
		TFinished:     visit.TFinished,
		Notes:         visit.Notes,
	}
}

func VisitsToResponses(visits []entity.Visit) []dto.VisitResponse {
	responses := make([]dto.VisitResponse, 0, len(visits))
	for i := range visits {
		responses = append(responses, *VisitToResponse(&visits[i]))
	}
	return responses
}

// VisitHistoryToResponse projects an archived visit the same way an active
// one is projected, so terminal transitions can return the final row.
func VisitHistoryToResponse(history *entity.VisitHistory) *dto.VisitResponse {
	return &dto.VisitResponse{
		ID:            history.SourceVisitID.String(),
		QueueNumber:   history.QueueNumber,
		QueueSequence: history.QueueSequence,
		VisitDate:     history.VisitDate.Format("2006-01-02"),
		Status:        string(history.Status),
		PatientName:   history.Patient.Name,
		DoctorName:    history.Doctor.Name,
		DoctorCode:    history.Doctor.DoctorCode,
		ServiceName:   history.Service.Name,
		ServicePrefix: history.Service.Prefix,
		TRegister:     history.TRegister,
		TCheckin:      history.TCheckin,
		TCalled:       history.TCalled,
		TInService:    history.TInService,
		TFinished:     history.TFinished,
		Notes:         history.Notes,
	}
}
