package get_customer_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-PortalService/internal/api/handlers"
	"github.com/m04kA/PetCare-PortalService/internal/api/middleware"
	"github.com/m04kA/PetCare-PortalService/internal/service/appointments"
	"github.com/m04kA/PetCare-PortalService/internal/service/appointments/models"
)

const (
	msgMissingCustomerID = "thiếu mã khách hàng"
	msgMissingUserID     = "thiếu thông tin người dùng"
	msgForbidden         = "không có quyền truy cập"
	msgInvalidStatus     = "trạng thái không hợp lệ"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerId}/appointments?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID := vars["customerId"]
	if customerID == "" {
		h.logger.Warn("GET /customers/{id}/appointments - Missing customer ID")
		handlers.RespondBadRequest(w, msgMissingCustomerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Историю видит только сам клиент
	if userID != customerID {
		h.logger.Warn("GET /customers/{id}/appointments - Access denied: customer=%s, user=%s",
			customerID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetCustomerAppointmentsRequest{CustomerID: customerID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	list, err := h.service.GetCustomerAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /customers/{id}/appointments - Invalid status filter: customer=%s", customerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /customers/{id}/appointments - Failed: customer=%s, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
