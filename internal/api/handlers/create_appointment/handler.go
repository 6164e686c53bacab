package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-PortalService/internal/api/handlers"
	"github.com/m04kA/PetCare-PortalService/internal/api/middleware"
	createAppointment "github.com/m04kA/PetCare-PortalService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "nội dung yêu cầu không hợp lệ"
	msgInvalidDate        = "định dạng ngày không hợp lệ, cần YYYY-MM-DD"
	msgMissingUserID      = "thiếu thông tin người dùng"
	msgSlotTaken          = "khung giờ này vừa có người đặt, vui lòng chọn khung giờ khác"
	msgSlotOutsideGrid    = "giờ hẹn nằm ngoài khung giờ khám của phòng khám"
	msgInvalidServiceType = "loại dịch vụ không hợp lệ"
	msgInvalidApptDate    = "ngày hẹn không hợp lệ"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: customer=%s, doctor=%s, time=%s",
				customerID, req.DoctorID, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrSlotOutsideGrid):
			h.logger.Warn("POST /appointments - Slot outside grid: customer=%s, time=%s", customerID, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotOutsideGrid)

		case errors.Is(err, createAppointment.ErrInvalidServiceType):
			h.logger.Warn("POST /appointments - Invalid service type: customer=%s, type=%s", customerID, req.ServiceType)
			handlers.RespondBadRequest(w, msgInvalidServiceType)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: customer=%s, date=%s", customerID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidApptDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: customer=%s, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer=%s, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%s, customer=%s, doctor=%s",
		result.ID, customerID, req.DoctorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
