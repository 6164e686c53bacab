package domain

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusCheckedIn AppointmentStatus = "checked_in"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ServiceType represents the kind of visit being booked
type ServiceType string

const (
	ServiceMedicalExam        ServiceType = "medical-exam"
	ServiceVaccinationSingle  ServiceType = "vaccination-single"
	ServiceVaccinationPackage ServiceType = "vaccination-package"
)

// ValidServiceType returns true for a known service type
func ValidServiceType(s ServiceType) bool {
	switch s {
	case ServiceMedicalExam, ServiceVaccinationSingle, ServiceVaccinationPackage:
		return true
	default:
		return false
	}
}

// InitialStatus возвращает начальный статус записи для типа услуги.
// Медосмотр сразу считается отмеченным (checked_in), вакцинации ждут подтверждения.
func (s ServiceType) InitialStatus() AppointmentStatus {
	if s == ServiceMedicalExam {
		return StatusCheckedIn
	}
	return StatusPending
}

// Appointment represents a veterinary appointment
type Appointment struct {
	ID          string
	PetID       string
	CustomerID  string
	BranchID    string
	DoctorID    string
	ServiceType ServiceType

	// ScheduledAt единственный канонический момент записи (дата + время слота).
	// Legacy-форматы (отдельные date/time) нормализуются на границе репозитория.
	ScheduledAt time.Time

	Reason string
	Status AppointmentStatus
	Notes  *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusCheckedIn
}

// IsCompleted returns true if the appointment is in a terminal successful state
func (a *Appointment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// CanTransitionTo проверяет допустимость перехода статуса.
// pending -> checked_in -> completed; отмена возможна из любого нетерминального состояния.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch next {
	case StatusCheckedIn:
		return a.Status == StatusPending
	case StatusCompleted:
		return a.Status == StatusCheckedIn
	case StatusCancelled:
		return a.CanBeCancelled()
	default:
		return false
	}
}

// DoctorDayFilter фильтр записей врача на конкретную дату
type DoctorDayFilter struct {
	DoctorID        string
	Date            time.Time // Календарная дата в локации сервиса
	IncludeInactive bool      // Включать ли отменённые записи
}

// CustomerAppointmentsFilter фильтр записей клиента
type CustomerAppointmentsFilter struct {
	CustomerID      string
	Status          *AppointmentStatus
	IncludeInactive bool
}
