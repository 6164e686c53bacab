package get_loyalty_account

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-PortalService/internal/api/handlers"
	"github.com/m04kA/PetCare-PortalService/internal/api/middleware"
)

const (
	msgMissingCustomerID = "thiếu mã khách hàng"
	msgMissingUserID     = "thiếu thông tin người dùng"
	msgForbidden         = "không có quyền truy cập"
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

// Handle GET /api/v1/customers/{customerId}/loyalty
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID := vars["customerId"]
	if customerID == "" {
		h.logger.Warn("GET /customers/{id}/loyalty - Missing customer ID")
		handlers.RespondBadRequest(w, msgMissingCustomerID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/{id}/loyalty - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if userID != customerID {
		h.logger.Warn("GET /customers/{id}/loyalty - Access denied: customer=%s, user=%s", customerID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	account, err := h.service.GetLoyaltyAccount(r.Context(), customerID)
	if err != nil {
		h.logger.Error("GET /customers/{id}/loyalty - Failed: customer=%s, error=%v", customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, account)
}
