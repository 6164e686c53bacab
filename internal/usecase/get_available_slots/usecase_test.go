package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	"github.com/m04kA/PetCare-PortalService/pkg/types"
)

var defaultGridTimes = []string{"08:00", "09:00", "10:00", "13:00", "14:00", "15:00", "16:00"}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error

	lastFilter domain.DoctorDayFilter
}

func (f *fakeAppointmentRepo) GetByDoctorAndDate(_ context.Context, filter domain.DoctorDayFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testGrid(t *testing.T) domain.SlotGrid {
	t.Helper()
	grid, err := domain.NewSlotGrid(defaultGridTimes, time.UTC)
	require.NoError(t, err)
	return grid
}

func apptAt(doctorID string, instant time.Time, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:          "a-" + instant.Format("15:04"),
		DoctorID:    doctorID,
		ScheduledAt: instant,
		Status:      status,
	}
}

func TestExecute_EmptyDay(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := NewUseCase(repo, testGrid(t), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		DoctorID: "doc-1",
		Date:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Len(t, resp.AllSlots, 7)
	assert.Empty(t, resp.Busy)
	assert.Len(t, resp.Bookable, 7)
	assert.Equal(t, "doc-1", repo.lastFilter.DoctorID)
	assert.False(t, repo.lastFilter.IncludeInactive)
}

func TestExecute_BusySlotExcluded(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			apptAt("doc-1", date.Add(9*time.Hour), domain.StatusPending),
		},
	}
	uc := NewUseCase(repo, testGrid(t), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: "doc-1", Date: date})

	require.NoError(t, err)
	nine, err := types.NewTimeStringFromString("09:00")
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{nine}, resp.Busy)
	assert.Len(t, resp.Bookable, 6)
	assert.NotContains(t, resp.Bookable, nine)
}

func TestExecute_DeterministicForSameState(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			apptAt("doc-1", date.Add(13*time.Hour), domain.StatusCheckedIn),
		},
	}
	uc := NewUseCase(repo, testGrid(t), nopLogger{})

	first, err := uc.Execute(context.Background(), &Request{DoctorID: "doc-1", Date: date})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{DoctorID: "doc-1", Date: date})
	require.NoError(t, err)

	assert.Equal(t, first.Busy, second.Busy)
	assert.Equal(t, first.Bookable, second.Bookable)
}

func TestExecute_NegativeOffsetLocationKeepsRequestedDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	grid, err := domain.NewSlotGrid(defaultGridTimes, loc)
	require.NoError(t, err)

	// Запись на 09:00 запрошенного дня в локации клиники
	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			apptAt("doc-1", time.Date(2026, 9, 10, 9, 0, 0, 0, loc), domain.StatusPending),
		},
	}
	uc := NewUseCase(repo, grid, nopLogger{})

	// Дата приходит с границы HTTP распарсенной как полночь UTC;
	// календарный день не должен уехать назад
	resp, err := uc.Execute(context.Background(), &Request{
		DoctorID: "doc-1",
		Date:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, loc), resp.Date)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, loc), repo.lastFilter.Date)

	nine, err := types.NewTimeStringFromString("09:00")
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{nine}, resp.Busy)
	assert.NotContains(t, resp.Bookable, nine)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, testGrid(t), nopLogger{})
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{DoctorID: "", Date: date})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{DoctorID: "doc-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeAppointmentRepo{err: errors.New("connection refused")}
	uc := NewUseCase(repo, testGrid(t), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		DoctorID: "doc-1",
		Date:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInternal)
}
