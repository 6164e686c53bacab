package models

import (
	"errors"
	"time"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             string `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на изменение статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetCustomerAppointmentsRequest запрос истории записей клиента
type GetCustomerAppointmentsRequest struct {
	CustomerID string  `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetDoctorDayRequest запрос записей врача на дату
type GetDoctorDayRequest struct {
	DoctorID        string    `json:"doctorId"`
	Date            time.Time `json:"date"`
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// Response модели

// AppointmentResponse ответ с данными записи на приём
type AppointmentResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"petId"`
	CustomerID  string    `json:"customerId"`
	BranchID    string    `json:"branchId"`
	DoctorID    string    `json:"doctorId"`
	ServiceType string    `json:"serviceType"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 a.ID,
		PetID:              a.PetID,
		CustomerID:         a.CustomerID,
		BranchID:           a.BranchID,
		DoctorID:           a.DoctorID,
		ServiceType:        string(a.ServiceType),
		ScheduledAt:        a.ScheduledAt,
		Reason:             a.Reason,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	items := make([]*AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		items = append(items, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{
		Appointments: items,
		Total:        len(items),
	}
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	switch status {
	case domain.StatusPending, domain.StatusCheckedIn, domain.StatusCompleted, domain.StatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
