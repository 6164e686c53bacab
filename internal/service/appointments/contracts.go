package appointments

import (
	"context"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetByCustomer(ctx context.Context, filter domain.CustomerAppointmentsFilter) ([]*domain.Appointment, error)
	GetByDoctorAndDate(ctx context.Context, filter domain.DoctorDayFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id string, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
