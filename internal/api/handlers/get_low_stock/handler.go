package get_low_stock

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-PortalService/internal/api/handlers"
	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

const (
	msgMissingBranchID  = "thiếu mã chi nhánh"
	msgInvalidThreshold = "ngưỡng tồn kho không hợp lệ"
)

// defaultThreshold порог дозаказа по умолчанию для страницы фармацевта
const defaultThreshold = 10

// LowStockItem строка отчёта по остаткам
type LowStockItem struct {
	BranchID    string `json:"branchId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// LowStockResponse список товаров с остатком ниже порога
type LowStockResponse struct {
	BranchID  string         `json:"branchId"`
	Threshold int            `json:"threshold"`
	Items     []LowStockItem `json:"items"`
}

type Handler struct {
	service InventoryService
	logger  Logger
}

func NewHandler(service InventoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/low-stock?threshold=10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	branchID := vars["branchId"]
	if branchID == "" {
		h.logger.Warn("GET /branches/{id}/low-stock - Missing branch ID")
		handlers.RespondBadRequest(w, msgMissingBranchID)
		return
	}

	threshold := defaultThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /branches/{id}/low-stock - Invalid threshold: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidThreshold)
			return
		}
		threshold = parsed
	}

	records, err := h.service.GetLowStock(r.Context(), branchID, threshold)
	if err != nil {
		h.logger.Error("GET /branches/{id}/low-stock - Failed: branch=%s, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomain(branchID, threshold, records))
}

func fromDomain(branchID string, threshold int, records []*domain.LowStockRecord) *LowStockResponse {
	items := make([]LowStockItem, 0, len(records))
	for _, rec := range records {
		items = append(items, LowStockItem{
			BranchID:    rec.BranchID,
			ProductID:   rec.ProductID,
			ProductName: rec.ProductName,
			Quantity:    rec.Quantity,
		})
	}
	return &LowStockResponse{BranchID: branchID, Threshold: threshold, Items: items}
}
