package get_order

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-PortalService/internal/api/handlers"
	"github.com/m04kA/PetCare-PortalService/internal/api/middleware"
	"github.com/m04kA/PetCare-PortalService/internal/service/store"
)

const (
	msgMissingOrderID = "thiếu mã đơn hàng"
	msgNotFound       = "không tìm thấy đơn hàng"
	msgMissingUserID  = "thiếu thông tin người dùng"
	msgForbidden      = "không có quyền truy cập"
)

type Handler struct {
	service StoreService
	logger  Logger
}

func NewHandler(service StoreService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["orderId"]
	if orderID == "" {
		h.logger.Warn("GET /orders/{id} - Missing order ID")
		handlers.RespondBadRequest(w, msgMissingOrderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /orders/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{id} - Not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, store.ErrAccessDenied):
			h.logger.Warn("GET /orders/{id} - Access denied: order_id=%s, user=%s", orderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /orders/{id} - Failed: order_id=%s, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, order)
}
