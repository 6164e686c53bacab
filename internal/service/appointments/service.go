package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
	appointmentRepo "github.com/m04kA/PetCare-PortalService/internal/infra/storage/appointment"
	"github.com/m04kA/PetCare-PortalService/internal/service/appointments/models"
)

// Service сервис для работы с записями на приём
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись на приём по ID
// Проверяет права доступа - запись видят её клиент и её врач
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, userID)

	appt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if appt.CustomerID != userID && appt.DoctorID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(appt), nil
}

// GetCustomerAppointments получает историю записей клиента
// Опционально фильтрует по статусу; отменённые записи включаются всегда
func (s *Service) GetCustomerAppointments(ctx context.Context, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: fetching appointments for customer=%s, status=%v", req.CustomerID, req.Status)

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerAppointments: invalid status=%s for customer=%s", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	filter := domain.CustomerAppointmentsFilter{
		CustomerID:      req.CustomerID,
		Status:          domainStatus,
		IncludeInactive: true, // История включает отменённые записи
	}

	appointments, err := s.appointmentRepo.GetByCustomer(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: successfully fetched %d appointments for customer=%s",
		len(appointments), req.CustomerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetDoctorDay получает записи врача на календарную дату (рабочий экран врача).
// По умолчанию возвращает только активные записи; IncludeInactive добавляет отменённые.
func (s *Service) GetDoctorDay(ctx context.Context, req *models.GetDoctorDayRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetDoctorDay: fetching appointments for doctor=%s, date=%s, includeInactive=%v",
		req.DoctorID, req.Date.Format(domain.DateFormat), req.IncludeInactive)

	filter := domain.DoctorDayFilter{
		DoctorID:        req.DoctorID,
		Date:            req.Date,
		IncludeInactive: req.IncludeInactive,
	}

	appointments, err := s.appointmentRepo.GetByDoctorAndDate(ctx, filter)
	if err != nil {
		s.logger.Error("GetDoctorDay: repository error for doctor=%s: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: GetDoctorDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDoctorDay: successfully fetched %d appointments for doctor=%s",
		len(appointments), req.DoctorID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись на приём
// Отменить можно только запись в статусе pending или checked_in; слот при этом
// освобождается (расчёт занятости пропускает отменённые записи)
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", id, req.UserID)

	appt, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	// Отменять запись может только её клиент
	if appt.CustomerID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%s to appointment id=%s", req.UserID, id)
		return nil, ErrAccessDenied
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s in status=%s cannot be cancelled", id, appt.Status)
		return nil, ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Перечитываем запись, чтобы вернуть актуальные cancelled_at / updated_at
	cancelled, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return models.FromDomainAppointment(cancelled), nil
}

// UpdateStatus переводит запись в новый статус (стойка регистрации / врач).
// Допустимые переходы: pending -> checked_in -> completed.
// Отмена через этот метод запрещена - у неё отдельный endpoint с причиной.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s", id, req.Status)

	status, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return nil, ErrInvalidStatus
	}

	if status == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation requested via status update for appointment id=%s", id)
		return nil, ErrInvalidTransition
	}

	appt, err := s.getAppointment(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if !appt.CanTransitionTo(status) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for appointment id=%s",
			appt.Status, status, id)
		return nil, ErrInvalidTransition
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getAppointment(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%s moved to status=%s", id, status)
	return models.FromDomainAppointment(updated), nil
}

// getAppointment загружает запись и маппит ошибку "не найдено" в сервисную
func (s *Service) getAppointment(ctx context.Context, op string, id string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}
