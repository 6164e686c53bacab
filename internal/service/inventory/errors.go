package inventory

import "errors"

var (
	// ErrProductNotStocked возвращается, когда товар не заведён в остатках филиала
	ErrProductNotStocked = errors.New("product is not stocked at this branch")

	// ErrInsufficientStock возвращается, когда запрошенного количества нет на складе.
	// Резервирование атомарно: при нехватке хотя бы одной позиции не списывается ничего.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidQuantity возвращается при неположительном количестве в заявке
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
