package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

// UseCase use case для получения доступных слотов врача на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	grid            domain.SlotGrid
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	grid domain.SlotGrid,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		grid:            grid,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Сетка слотов детерминирована и не зависит от данных; занятость считается
// только по активным записям врача на запрошенную календарную дату.
// Чтение идёт без транзакции: ответ - моментальный снимок, финальная проверка
// конфликта всё равно выполняется при создании записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%s, date=%s",
		req.DoctorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Пересобираем запрошенный календарный день в локации сетки
	date := uc.grid.DayStart(req.Date)

	// 3. Получаем активные записи врача на дату (отменённые слот не занимают)
	filter := domain.DoctorDayFilter{
		DoctorID:        req.DoctorID,
		Date:            date,
		IncludeInactive: false,
	}

	appointments, err := uc.appointmentRepo.GetByDoctorAndDate(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for doctor=%s: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Разбиваем сетку на занятые и свободные слоты
	busy, bookable := uc.grid.Partition(date, appointments)

	uc.logger.Info("GetAvailableSlots: doctor=%s, date=%s: %d total, %d busy, %d bookable",
		req.DoctorID, req.Date.Format(domain.DateFormat), len(uc.grid.Times()), len(busy), len(bookable))

	return &Response{
		DoctorID: req.DoctorID,
		Date:     date,
		AllSlots: uc.grid.Times(),
		Busy:     busy,
		Bookable: bookable,
	}, nil
}
