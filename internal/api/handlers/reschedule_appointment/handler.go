package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-PortalService/internal/api/handlers"
	"github.com/m04kA/PetCare-PortalService/internal/api/middleware"
	rescheduleAppointment "github.com/m04kA/PetCare-PortalService/internal/usecase/reschedule_appointment"
)

const (
	msgMissingAppointmentID = "thiếu mã lịch hẹn"
	msgInvalidRequestBody   = "nội dung yêu cầu không hợp lệ"
	msgInvalidDate          = "định dạng ngày không hợp lệ, cần YYYY-MM-DD"
	msgMissingUserID        = "thiếu thông tin người dùng"
	msgNotFound             = "không tìm thấy lịch hẹn"
	msgForbidden            = "không có quyền truy cập"
	msgSlotTaken            = "khung giờ này vừa có người đặt, vui lòng chọn khung giờ khác"
	msgSlotOutsideGrid      = "giờ hẹn nằm ngoài khung giờ khám của phòng khám"
	msgInvalidApptDate      = "ngày hẹn không hợp lệ"
	msgCannotReschedule     = "lịch hẹn này không thể dời"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]
	if appointmentID == "" {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing appointment ID")
		handlers.RespondBadRequest(w, msgMissingAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Access denied: appointment_id=%s, user=%s",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleAppointment.ErrSlotTaken):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot taken: appointment_id=%s, time=%s",
				appointmentID, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, rescheduleAppointment.ErrCannotReschedule):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Cannot reschedule: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, rescheduleAppointment.ErrSlotOutsideGrid):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot outside grid: appointment_id=%s, time=%s",
				appointmentID, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotOutsideGrid)

		case errors.Is(err, rescheduleAppointment.ErrInvalidDate):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid date: appointment_id=%s, date=%s",
				appointmentID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidApptDate)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Rescheduled: appointment_id=%s, doctor=%s, user=%s",
		result.ID, result.DoctorID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
