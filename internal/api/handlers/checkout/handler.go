package checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetCare-PortalService/internal/api/handlers"
	"github.com/m04kA/PetCare-PortalService/internal/api/middleware"
	checkoutUC "github.com/m04kA/PetCare-PortalService/internal/usecase/checkout"
)

const (
	msgInvalidRequestBody = "nội dung yêu cầu không hợp lệ"
	msgMissingUserID      = "thiếu thông tin người dùng"
	msgEmptyCart          = "giỏ hàng trống"
	msgProductNotFound    = "không tìm thấy sản phẩm"
	msgInsufficientStock  = "sản phẩm không đủ hàng trong kho"
)

type Handler struct {
	useCase CheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(customerID))
	if err != nil {
		switch {
		case errors.Is(err, checkoutUC.ErrEmptyCart):
			h.logger.Warn("POST /orders - Empty cart: customer=%s", customerID)
			handlers.RespondBadRequest(w, msgEmptyCart)

		case errors.Is(err, checkoutUC.ErrProductNotFound):
			h.logger.Warn("POST /orders - Product not found: customer=%s, error=%v", customerID, err)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, checkoutUC.ErrInsufficientStock):
			h.logger.Warn("POST /orders - Insufficient stock: customer=%s, error=%v", customerID, err)
			handlers.RespondConflict(w, msgInsufficientStock)

		case errors.Is(err, checkoutUC.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid input: customer=%s, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /orders - Checkout failed: customer=%s, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created: order_id=%s, customer=%s, total=%.0f",
		result.OrderID, customerID, result.Total)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
