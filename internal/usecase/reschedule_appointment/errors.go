package reschedule_appointment

import "errors"

var (
	// ErrSlotTaken возвращается, когда новый слот врача уже занят.
	// Ловится и при повторной проверке перед обновлением, и от уникального
	// индекса БД при гонке двух конкурирующих переносов.
	ErrSlotTaken = errors.New("reschedule_appointment: slot already taken")

	// ErrSlotOutsideGrid возвращается, когда время не входит в дневную сетку
	ErrSlotOutsideGrid = errors.New("reschedule_appointment: time is outside the slot grid")

	// ErrInvalidDate возвращается при новой дате записи в прошлом
	ErrInvalidDate = errors.New("reschedule_appointment: invalid appointment date")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда запись переносит не её клиент
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrCannotReschedule возвращается для завершённых и отменённых записей
	ErrCannotReschedule = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
