package inventory

import "errors"

var (
	// ErrRecordNotFound возвращается, когда остаток товара в филиале не найден
	ErrRecordNotFound = errors.New("inventory.repository: record not found")

	// ErrNegativeStock возвращается, когда списание увело бы остаток ниже нуля.
	// Дублирует проверку сервиса на уровне CHECK-ограничения БД.
	ErrNegativeStock = errors.New("inventory.repository: stock would go negative")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("inventory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("inventory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("inventory.repository: failed to scan row")
)
