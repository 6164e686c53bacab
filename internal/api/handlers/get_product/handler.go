package get_product

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-PortalService/internal/api/handlers"
	"github.com/m04kA/PetCare-PortalService/internal/service/store"
)

const (
	msgMissingProductID = "thiếu mã sản phẩm"
	msgNotFound         = "không tìm thấy sản phẩm"
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

// Handle GET /api/v1/products/{productId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID := vars["productId"]
	if productID == "" {
		h.logger.Warn("GET /products/{id} - Missing product ID")
		handlers.RespondBadRequest(w, msgMissingProductID)
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			h.logger.Warn("GET /products/{id} - Not found: product_id=%s", productID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /products/{id} - Failed: product_id=%s, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, product)
}
