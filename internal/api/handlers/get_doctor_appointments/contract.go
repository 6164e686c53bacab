package get_doctor_appointments

import (
	"context"

	"github.com/m04kA/PetCare-PortalService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetDoctorDay(ctx context.Context, req *models.GetDoctorDayRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
