package checkout

import "errors"

var (
	// ErrEmptyCart возвращается при оформлении пустой корзины
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrProductNotFound возвращается, когда товар корзины не найден в каталоге
	ErrProductNotFound = errors.New("checkout: product not found")

	// ErrInsufficientStock возвращается при нехватке остатка по любой позиции.
	// Оформление атомарно: при нехватке не списывается и не сохраняется ничего.
	ErrInsufficientStock = errors.New("checkout: insufficient stock")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkout: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkout: internal error")
)
