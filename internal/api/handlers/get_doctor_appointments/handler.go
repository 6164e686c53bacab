package get_doctor_appointments

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetCare-PortalService/internal/api/handlers"
	"github.com/m04kA/PetCare-PortalService/internal/domain"
	"github.com/m04kA/PetCare-PortalService/internal/service/appointments/models"
)

const (
	msgMissingDoctorID = "thiếu mã bác sĩ"
	msgInvalidDate     = "định dạng ngày không hợp lệ, cần YYYY-MM-DD"
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

// Handle GET /api/v1/doctors/{doctorId}/appointments?date=YYYY-MM-DD&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID := vars["doctorId"]
	if doctorID == "" {
		h.logger.Warn("GET /doctors/{id}/appointments - Missing doctor ID")
		handlers.RespondBadRequest(w, msgMissingDoctorID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.GetDoctorDayRequest{
		DoctorID:        doctorID,
		Date:            date,
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}

	list, err := h.service.GetDoctorDay(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /doctors/{id}/appointments - Failed: doctor=%s, error=%v", doctorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
