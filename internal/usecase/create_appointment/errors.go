package create_appointment

import "errors"

var (
	// ErrSlotTaken возвращается, когда выбранный слот врача уже занят.
	// Ловится и при повторной проверке перед вставкой, и от уникального
	// индекса БД - второй из двух конкурирующих клиентов получит именно её.
	ErrSlotTaken = errors.New("create_appointment: slot already taken")

	// ErrSlotOutsideGrid возвращается, когда время не входит в дневную сетку
	ErrSlotOutsideGrid = errors.New("create_appointment: time is outside the slot grid")

	// ErrInvalidServiceType возвращается при неизвестном типе услуги
	ErrInvalidServiceType = errors.New("create_appointment: invalid service type")

	// ErrInvalidDate возвращается при дате записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
