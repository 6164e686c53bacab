package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	appointmentRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/appointment"
)

// UseCase use case для создания записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	grid            domain.SlotGrid
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	grid domain.SlotGrid,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		grid:            grid,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи на приём.
//
// Доступность слота, показанная клиенту ранее, считается устаревшей: перед
// вставкой занятость перепроверяется в сериализуемой транзакции с блокировкой
// строк врача (FOR UPDATE). Последней линией защиты служит частичный
// уникальный индекс по (doctor_id, scheduled_at) для неотменённых записей -
// из двух конкурирующих клиентов один получает подтверждение, второй ErrSlotTaken.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%s, doctor=%s, date=%s, time=%s, service=%s",
		req.CustomerID, req.DoctorID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что время входит в дневную сетку
	if !uc.grid.Contains(req.StartTime) {
		uc.logger.Warn("CreateAppointment: time=%s is outside the slot grid", req.StartTime)
		return nil, ErrSlotOutsideGrid
	}

	// 3. Совмещаем дату и слот в канонический момент записи
	scheduledAt, err := uc.grid.SlotInstant(req.Date, req.StartTime)
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to build schedule instant: %v", err)
		return nil, fmt.Errorf("%w: invalid date/time combination: %v", ErrInvalidInput, err)
	}

	// 4. Запись в прошлое не имеет смысла
	now := uc.timeProvider.Now()
	if err := validateDate(scheduledAt, now); err != nil {
		uc.logger.Warn("CreateAppointment: scheduledAt=%s is in the past", scheduledAt)
		return nil, err
	}

	serviceType := domain.ServiceType(req.ServiceType)

	var result *domain.Appointment

	// 5. Проверка конфликта и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем активные записи врача на дату с блокировкой (FOR UPDATE)
		filter := domain.DoctorDayFilter{
			DoctorID:        req.DoctorID,
			Date:            scheduledAt.In(uc.grid.Location()),
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByDoctorAndDate(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.2. Перепроверяем занятость слота
		for _, busy := range uc.grid.BusySlots(scheduledAt.In(uc.grid.Location()), appointments) {
			if busy == req.StartTime {
				uc.logger.Warn("CreateAppointment: slot %s already taken for doctor=%s on %s",
					req.StartTime, req.DoctorID, req.Date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
		}

		// 5.3. Создаем запись; начальный статус зависит от типа услуги
		appt := &domain.Appointment{
			ID:          uuid.NewString(),
			PetID:       req.PetID,
			CustomerID:  req.CustomerID,
			BranchID:    req.BranchID,
			DoctorID:    req.DoctorID,
			ServiceType: serviceType,
			ScheduledAt: scheduledAt,
			Reason:      req.Reason,
			Status:      serviceType.InitialStatus(),
			Notes:       req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				// Конкурент успел раньше - уникальный индекс отбил вставку
				uc.logger.Warn("CreateAppointment: unique index rejected slot %s for doctor=%s",
					req.StartTime, req.DoctorID)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s, status=%s",
		result.ID, result.Status)

	return &Response{
		ID:          result.ID,
		CustomerID:  result.CustomerID,
		PetID:       result.PetID,
		BranchID:    result.BranchID,
		DoctorID:    result.DoctorID,
		ServiceType: string(result.ServiceType),
		ScheduledAt: result.ScheduledAt,
		Reason:      result.Reason,
		Status:      string(result.Status),
		Notes:       result.Notes,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}
