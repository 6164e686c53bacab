package list_products

import (
	"net/http"

	"github.com/m04kA/PetCare-PortalService/internal/api/handlers"
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

// Handle GET /api/v1/products?category=food&branchId=branch-1
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var category, branchID *string
	if v := r.URL.Query().Get("category"); v != "" {
		category = &v
	}
	if v := r.URL.Query().Get("branchId"); v != "" {
		branchID = &v
	}

	list, err := h.service.ListProducts(r.Context(), category, branchID)
	if err != nil {
		h.logger.Error("GET /products - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
