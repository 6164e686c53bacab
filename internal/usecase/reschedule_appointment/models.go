package reschedule_appointment

import (
	"time"

	"github.com/m04kA/PetCare-PortalService/pkg/types"
)

// Request модель запроса на перенос записи на приём
type Request struct {
	UserID        string           // ID пользователя (из заголовка аутентификации)
	AppointmentID string           // ID переносимой записи
	DoctorID      string           // ID нового врача (пустой - врач не меняется)
	Date          time.Time        // Новая дата записи (без времени)
	StartTime     types.TimeString // Новый слот сетки (например, "09:00")
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID          string    // ID записи
	CustomerID  string    // ID клиента
	PetID       string    // ID питомца
	BranchID    string    // ID филиала
	DoctorID    string    // ID врача после переноса
	ServiceType string    // Тип услуги
	ScheduledAt time.Time // Новый момент записи (дата + слот в локации клиники)
	Reason      string    // Причина визита
	Status      string    // Статус (перенос его не меняет)
	Notes       *string   // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
