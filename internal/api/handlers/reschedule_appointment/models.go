package reschedule_appointment

import (
	"time"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	rescheduleAppointment "github.com/m04kA/PetCare-PortalService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/PetCare-PortalService/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	DoctorID  string `json:"doctorId,omitempty"` // пустой - врач не меняется
	Date      string `json:"date"`               // "2026-09-15"
	StartTime string `json:"startTime"`          // "10:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customerId"`
	PetID       string  `json:"petId"`
	BranchID    string  `json:"branchId"`
	DoctorID    string  `json:"doctorId"`
	ServiceType string  `json:"serviceType"`
	ScheduledAt string  `json:"scheduledAt"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(userID, appointmentID string) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		UserID:        userID,
		AppointmentID: appointmentID,
		DoctorID:      r.DoctorID,
		Date:          date,
		StartTime:     startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		CustomerID:  resp.CustomerID,
		PetID:       resp.PetID,
		BranchID:    resp.BranchID,
		DoctorID:    resp.DoctorID,
		ServiceType: resp.ServiceType,
		ScheduledAt: resp.ScheduledAt.Format(time.RFC3339),
		Date:        resp.ScheduledAt.Format(domain.DateFormat),
		StartTime:   resp.ScheduledAt.Format(domain.TimeFormat),
		Reason:      resp.Reason,
		Status:      resp.Status,
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
