package create_appointment

import (
	"time"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	createAppointment "github.com/m04kA/PetCare-PortalService/internal/usecase/create_appointment"
	"github.com/m04kA/PetCare-PortalService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PetID       string  `json:"petId"`
	BranchID    string  `json:"branchId"`
	DoctorID    string  `json:"doctorId"`
	ServiceType string  `json:"serviceType"`
	Date        string  `json:"date"`      // "2026-09-10"
	StartTime   string  `json:"startTime"` // "09:00"
	Reason      string  `json:"reason"`
	Notes       *string `json:"notes,omitempty"`
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
func (r *CreateAppointmentRequest) ToUseCaseRequest(customerID string) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CustomerID:  customerID,
		PetID:       r.PetID,
		BranchID:    r.BranchID,
		DoctorID:    r.DoctorID,
		ServiceType: r.ServiceType,
		Date:        date,
		StartTime:   startTime,
		Reason:      r.Reason,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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
