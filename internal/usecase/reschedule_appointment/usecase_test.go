package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	appointmentRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/appointment"
	"github.com/m04kA/PetCare-PortalService/pkg/types"
)

var gridTimes = []string{"08:00", "09:00", "10:00", "13:00", "14:00", "15:00", "16:00"}

type fakeAppointmentRepo struct {
	appointments map[string]*domain.Appointment
	updateErr    error

	updatedID       string
	updatedDoctorID string
	updatedInstant  time.Time
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByDoctorAndDate(_ context.Context, filter domain.DoctorDayFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range f.appointments {
		if appt.DoctorID == filter.DoctorID && appt.IsActive() {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) UpdateSchedule(_ context.Context, id string, doctorID string, scheduledAt time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	appt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.DoctorID = doctorID
	appt.ScheduledAt = scheduledAt
	appt.UpdatedAt = time.Now()
	f.updatedID = id
	f.updatedDoctorID = doctorID
	f.updatedInstant = scheduledAt
	return nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(t *testing.T, repo *fakeAppointmentRepo) (*UseCase, *fakeTxManager) {
	t.Helper()
	grid, err := domain.NewSlotGrid(gridTimes, time.UTC)
	require.NoError(t, err)

	tx := &fakeTxManager{}
	uc := NewUseCase(repo, grid, tx, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return uc, tx
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func pendingAppointment(id, customerID, doctorID string, scheduledAt time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:          id,
		PetID:       "pet-1",
		CustomerID:  customerID,
		BranchID:    "branch-1",
		DoctorID:    doctorID,
		ServiceType: domain.ServiceVaccinationSingle,
		ScheduledAt: scheduledAt,
		Status:      domain.StatusPending,
	}
}

func validRequest(t *testing.T) *Request {
	return &Request{
		UserID:        "cust-1",
		AppointmentID: "appt-1",
		Date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     mustTime(t, "10:00"),
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": pendingAppointment("appt-1", "cust-1", "doc-1",
			time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)),
	}}
	uc, tx := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, "appt-1", repo.updatedID)
	assert.Equal(t, "doc-1", resp.DoctorID) // врач не менялся
	assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC), resp.ScheduledAt)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_ChangeDoctor(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": pendingAppointment("appt-1", "cust-1", "doc-1",
			time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)),
	}}
	uc, _ := newTestUseCase(t, repo)

	req := validRequest(t)
	req.DoctorID = "doc-2"

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "doc-2", resp.DoctorID)
	assert.Equal(t, "doc-2", repo.updatedDoctorID)
}

func TestExecute_OwnSlotNotCountedAsBusy(t *testing.T) {
	// Перенос на собственный текущий слот (смена только врача не запрошена)
	current := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": pendingAppointment("appt-1", "cust-1", "doc-1", current),
	}}
	uc, _ := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	assert.Equal(t, current, resp.ScheduledAt)
}

func TestExecute_SlotTakenOnRecheck(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": pendingAppointment("appt-1", "cust-1", "doc-1",
			time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)),
		"other": pendingAppointment("other", "cust-2", "doc-1",
			time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)),
	}}
	uc, _ := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, repo.updatedID)
}

func TestExecute_SlotTakenByUniqueIndex(t *testing.T) {
	// Повторная проверка прошла, но конкурент занял слот первым
	repo := &fakeAppointmentRepo{
		appointments: map[string]*domain.Appointment{
			"appt-1": pendingAppointment("appt-1", "cust-1", "doc-1",
				time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)),
		},
		updateErr: appointmentRepo.ErrSlotTaken,
	}
	uc, _ := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_OnlyOwnCustomer(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{
		"appt-1": pendingAppointment("appt-1", "cust-1", "doc-1",
			time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)),
	}}
	uc, _ := newTestUseCase(t, repo)

	req := validRequest(t)
	req.UserID = "cust-2"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.updatedID)
}

func TestExecute_CompletedNotReschedulable(t *testing.T) {
	appt := pendingAppointment("appt-1", "cust-1", "doc-1",
		time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC))
	appt.Status = domain.StatusCompleted
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{"appt-1": appt}}
	uc, _ := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: map[string]*domain.Appointment{}}
	uc, _ := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_SlotOutsideGrid(t *testing.T) {
	uc, _ := newTestUseCase(t, &fakeAppointmentRepo{})

	req := validRequest(t)
	req.StartTime = mustTime(t, "11:00") // обеденное окно, в сетке нет

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotOutsideGrid)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc, _ := newTestUseCase(t, &fakeAppointmentRepo{})

	req := validRequest(t)
	req.Date = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(t, &fakeAppointmentRepo{})

	testCases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing user", func(r *Request) { r.UserID = "" }},
		{"missing appointment", func(r *Request) { r.AppointmentID = "" }},
		{"missing date", func(r *Request) { r.Date = time.Time{} }},
		{"missing time", func(r *Request) { r.StartTime = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(t)
			tc.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
