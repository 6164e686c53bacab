package get_available_slots

import (
	"time"

	"github.com/m04kA/PetCare-PortalService/pkg/types"
)

// Request модель запроса доступных слотов врача на дату
type Request struct {
	DoctorID string    // ID врача
	Date     time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа с разбивкой дневной сетки слотов
type Response struct {
	DoctorID string             // ID врача
	Date     time.Time          // Дата, на которую запрашивались слоты
	AllSlots []types.TimeString // Полная дневная сетка
	Busy     []types.TimeString // Занятые активными записями слоты
	Bookable []types.TimeString // Свободные для записи слоты
}
