package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	appointmentRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/appointment"
	"github.com/m04kA/PetCare-PortalService/internal/service/appointments/models"
)

type fakeAppointmentRepo struct {
	appointments map[string]*domain.Appointment

	cancelledID     string
	cancelledReason string
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByCustomer(_ context.Context, filter domain.CustomerAppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range f.appointments {
		if appt.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Status != nil && appt.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && !appt.IsActive() {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetByDoctorAndDate(_ context.Context, filter domain.DoctorDayFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range f.appointments {
		if appt.DoctorID != filter.DoctorID {
			continue
		}
		if !filter.IncludeInactive && !appt.IsActive() {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	appt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id string, reason string) error {
	appt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	now := time.Now()
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = &reason
	appt.CancelledAt = &now
	f.cancelledID = id
	f.cancelledReason = reason
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestAppointment(id, customerID, doctorID string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:          id,
		PetID:       "pet-1",
		CustomerID:  customerID,
		BranchID:    "branch-1",
		DoctorID:    doctorID,
		ServiceType: domain.ServiceVaccinationSingle,
		ScheduledAt: time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC),
		Status:      status,
	}
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": newTestAppointment("appt-1", "customer-1", "doctor-1", domain.StatusPending),
	}}
	svc := NewService(repo, nopLogger{})

	// Клиент и врач видят запись
	resp, err := svc.GetByID(context.Background(), "appt-1", "customer-1")
	require.NoError(t, err)
	assert.Equal(t, "appt-1", resp.ID)

	_, err = svc.GetByID(context.Background(), "appt-1", "doctor-1")
	require.NoError(t, err)

	// Посторонний пользователь - нет
	_, err = svc.GetByID(context.Background(), "appt-1", "customer-2")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), "missing", "customer-1")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": newTestAppointment("appt-1", "customer-1", "doctor-1", domain.StatusPending),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Cancel(context.Background(), "appt-1", &models.CancelAppointmentRequest{
		UserID:             "customer-1",
		CancellationReason: "pet recovered",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "pet recovered", *resp.CancellationReason)
	assert.Equal(t, "appt-1", repo.cancelledID)
}

func TestCancel_OnlyOwnCustomer(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": newTestAppointment("appt-1", "customer-1", "doctor-1", domain.StatusPending),
	}}
	svc := NewService(repo, nopLogger{})

	// Врач отменить запись клиента не может
	_, err := svc.Cancel(context.Background(), "appt-1", &models.CancelAppointmentRequest{
		UserID: "doctor-1",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelledID)
}

func TestCancel_CompletedNotAllowed(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": newTestAppointment("appt-1", "customer-1", "doctor-1", domain.StatusCompleted),
	}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Cancel(context.Background(), "appt-1", &models.CancelAppointmentRequest{
		UserID: "customer-1",
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_ValidTransitions(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": newTestAppointment("appt-1", "customer-1", "doctor-1", domain.StatusPending),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), "appt-1", &models.UpdateStatusRequest{Status: "checked_in"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCheckedIn), resp.Status)

	resp, err = svc.UpdateStatus(context.Background(), "appt-1", &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestUpdateStatus_SkippingCheckInRejected(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": newTestAppointment("appt-1", "customer-1", "doctor-1", domain.StatusPending),
	}}
	svc := NewService(repo, nopLogger{})

	// pending -> completed минуя checked_in запрещён
	_, err := svc.UpdateStatus(context.Background(), "appt-1", &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusPending, repo.appointments["appt-1"].Status)
}

func TestUpdateStatus_CancellationViaStatusRejected(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": newTestAppointment("appt-1", "customer-1", "doctor-1", domain.StatusPending),
	}}
	svc := NewService(repo, nopLogger{})

	// Отмена идёт через отдельный endpoint с причиной
	_, err := svc.UpdateStatus(context.Background(), "appt-1", &models.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": newTestAppointment("appt-1", "customer-1", "doctor-1", domain.StatusPending),
	}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), "appt-1", &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetCustomerAppointments_StatusFilter(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": newTestAppointment("appt-1", "customer-1", "doctor-1", domain.StatusPending),
		"appt-2": newTestAppointment("appt-2", "customer-1", "doctor-1", domain.StatusCancelled),
		"appt-3": newTestAppointment("appt-3", "customer-2", "doctor-1", domain.StatusPending),
	}}
	svc := NewService(repo, nopLogger{})

	// Без фильтра история включает отменённые
	resp, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: "customer-1",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)

	status := "cancelled"
	resp, err = svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: "customer-1",
		Status:     &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "appt-2", resp.Appointments[0].ID)

	bad := "archived"
	_, err = svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		CustomerID: "customer-1",
		Status:     &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
