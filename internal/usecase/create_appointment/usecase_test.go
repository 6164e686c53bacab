package create_appointment

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
	existing  []*domain.Appointment
	createErr error

	created *domain.Appointment
}

func (f *fakeAppointmentRepo) GetByDoctorAndDate(_ context.Context, _ domain.DoctorDayFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.created = appt
	return appt, nil
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

func validRequest(t *testing.T) *Request {
	return &Request{
		CustomerID:  "cust-1",
		PetID:       "pet-1",
		BranchID:    "branch-1",
		DoctorID:    "doc-1",
		ServiceType: string(domain.ServiceVaccinationSingle),
		Date:        time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   mustTime(t, "09:00"),
		Reason:      "annual rabies shot",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc, tx := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC), resp.ScheduledAt)
	require.NotNil(t, repo.created)
	assert.Equal(t, "doc-1", repo.created.DoctorID)
}

func TestExecute_MedicalExamIsCheckedInImmediately(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc, _ := newTestUseCase(t, repo)

	req := validRequest(t)
	req.ServiceType = string(domain.ServiceMedicalExam)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCheckedIn), resp.Status)
}

func TestExecute_SlotTakenOnRecheck(t *testing.T) {
	scheduled := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{ID: "other", DoctorID: "doc-1", ScheduledAt: scheduled, Status: domain.StatusPending},
		},
	}
	uc, _ := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, repo.created)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	scheduled := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{ID: "other", DoctorID: "doc-1", ScheduledAt: scheduled, Status: domain.StatusCancelled},
		},
	}
	uc, _ := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_SlotTakenByUniqueIndex(t *testing.T) {
	// Повторная проверка прошла, но конкурент вставил запись первым
	repo := &fakeAppointmentRepo{createErr: appointmentRepo.ErrSlotTaken}
	uc, _ := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrSlotTaken)
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
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"missing customer", func(r *Request) { r.CustomerID = "" }, ErrInvalidInput},
		{"missing pet", func(r *Request) { r.PetID = "" }, ErrInvalidInput},
		{"missing branch", func(r *Request) { r.BranchID = "" }, ErrInvalidInput},
		{"missing doctor", func(r *Request) { r.DoctorID = "" }, ErrInvalidInput},
		{"unknown service type", func(r *Request) { r.ServiceType = "grooming" }, ErrInvalidServiceType},
		{"missing reason", func(r *Request) { r.Reason = "" }, ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(t)
			tc.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
