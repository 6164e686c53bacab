package get_available_slots

import (
	"context"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	GetByDoctorAndDate(ctx context.Context, filter domain.DoctorDayFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
