package get_available_slots

import (
	"github.com/m04kA/PetCare-PortalService/internal/domain"
	getAvailableSlots "github.com/m04kA/PetCare-PortalService/internal/usecase/get_available_slots"
	"github.com/m04kA/PetCare-PortalService/pkg/types"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	DoctorID string   `json:"doctorId"`
	Date     string   `json:"date"`
	AllSlots []string `json:"allSlots"`
	Busy     []string `json:"busy"`
	Bookable []string `json:"bookable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	return &SlotsResponse{
		DoctorID: resp.DoctorID,
		Date:     resp.Date.Format(domain.DateFormat),
		AllSlots: toStrings(resp.AllSlots),
		Busy:     toStrings(resp.Busy),
		Bookable: toStrings(resp.Bookable),
	}
}

func toStrings(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
