package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	appointmentRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/appointment"
)

// UseCase use case для переноса записи на приём
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

// Execute выполняет use case переноса записи.
//
// Перенос подчиняется тем же правилам конфликта, что и создание: занятость
// нового слота перепроверяется в сериализуемой транзакции с блокировкой строк
// врача (FOR UPDATE), а частичный уникальный индекс по (doctor_id, scheduled_at)
// отбивает конкурирующий перенос или создание на тот же слот. Текущий слот
// самой записи при проверке не считается занятым - перенос на него идемпотентен.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%s, user=%s, date=%s, time=%s",
		req.AppointmentID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что новое время входит в дневную сетку
	if !uc.grid.Contains(req.StartTime) {
		uc.logger.Warn("RescheduleAppointment: time=%s is outside the slot grid", req.StartTime)
		return nil, ErrSlotOutsideGrid
	}

	// 3. Совмещаем дату и слот в канонический момент записи
	scheduledAt, err := uc.grid.SlotInstant(req.Date, req.StartTime)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: failed to build schedule instant: %v", err)
		return nil, fmt.Errorf("%w: invalid date/time combination: %v", ErrInvalidInput, err)
	}

	// 4. Перенос в прошлое не имеет смысла
	now := uc.timeProvider.Now()
	if err := validateDate(scheduledAt, now); err != nil {
		uc.logger.Warn("RescheduleAppointment: scheduledAt=%s is in the past", scheduledAt)
		return nil, err
	}

	var result *domain.Appointment

	// 5. Проверка прав, состояния и конфликта в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Загружаем переносимую запись
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment: %v", err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 5.2. Переносить запись может только её клиент
		if appt.CustomerID != req.UserID {
			uc.logger.Warn("RescheduleAppointment: access denied for user=%s to appointment=%s",
				req.UserID, req.AppointmentID)
			return ErrAccessDenied
		}

		// 5.3. Завершённые и отменённые записи не переносятся
		if !appt.CanBeCancelled() {
			uc.logger.Warn("RescheduleAppointment: appointment=%s in status=%s cannot be rescheduled",
				req.AppointmentID, appt.Status)
			return ErrCannotReschedule
		}

		// 5.4. Пустой DoctorID означает перенос у текущего врача
		doctorID := req.DoctorID
		if doctorID == "" {
			doctorID = appt.DoctorID
		}

		// 5.5. Получаем активные записи нового врача на дату с блокировкой (FOR UPDATE)
		filter := domain.DoctorDayFilter{
			DoctorID:        doctorID,
			Date:            scheduledAt.In(uc.grid.Location()),
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByDoctorAndDate(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.6. Перепроверяем занятость слота; сама переносимая запись не в счёт
		others := make([]*domain.Appointment, 0, len(appointments))
		for _, a := range appointments {
			if a.ID != appt.ID {
				others = append(others, a)
			}
		}
		for _, busy := range uc.grid.BusySlots(scheduledAt.In(uc.grid.Location()), others) {
			if busy == req.StartTime {
				uc.logger.Warn("RescheduleAppointment: slot %s already taken for doctor=%s on %s",
					req.StartTime, doctorID, req.Date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
		}

		// 5.7. Обновляем врача и момент записи
		if err := uc.appointmentRepo.UpdateSchedule(txCtx, appt.ID, doctorID, scheduledAt); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				// Конкурент успел раньше - уникальный индекс отбил обновление
				uc.logger.Warn("RescheduleAppointment: unique index rejected slot %s for doctor=%s",
					req.StartTime, doctorID)
				return ErrSlotTaken
			}
			uc.logger.Error("RescheduleAppointment: failed to update schedule: %v", err)
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		// 5.8. Перечитываем запись, чтобы вернуть актуальный updated_at
		updated, err := uc.appointmentRepo.GetByID(txCtx, appt.ID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to reload appointment: %v", err)
			return fmt.Errorf("%w: failed to reload appointment: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment=%s moved to doctor=%s at %s",
		result.ID, result.DoctorID, result.ScheduledAt)

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
