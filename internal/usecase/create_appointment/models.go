package create_appointment

import (
	"time"

	"github.com/m04kA/PetCare-PortalService/pkg/types"
)

// Request модель запроса на создание записи на приём
type Request struct {
	CustomerID  string           // ID клиента (из заголовка аутентификации)
	PetID       string           // ID питомца
	BranchID    string           // ID филиала клиники
	DoctorID    string           // ID врача
	ServiceType string           // Тип услуги (medical-exam / vaccination-single / vaccination-package)
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Слот сетки (например, "09:00")
	Reason      string           // Причина визита
	Notes       *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID          string    // ID созданной записи
	CustomerID  string    // ID клиента
	PetID       string    // ID питомца
	BranchID    string    // ID филиала
	DoctorID    string    // ID врача
	ServiceType string    // Тип услуги
	ScheduledAt time.Time // Момент записи (дата + слот в локации клиники)
	Reason      string    // Причина визита
	Status      string    // Начальный статус (зависит от типа услуги)
	Notes       *string   // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
