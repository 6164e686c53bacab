package domain

// Pricing constants
const (
	// TaxRate НДС, считается от суммы до скидки
	TaxRate = 0.10

	// PointsPerUnit бонусные баллы: 1 балл за каждые 50 000 VND итоговой суммы
	PointsPerUnit = 50_000.0
)

// Loyalty tier thresholds (cumulative spend, VND)
const (
	SilverThreshold = 5_000_000.0
	GoldThreshold   = 12_000_000.0
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxReasonLength             = 500
	MaxCancellationReasonLength = 500
	MinOrderItemQuantity        = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы записей, занимающих слот.
// Используются при подсчёте занятых слотов.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusCheckedIn,
	StatusCompleted,
}

// InactiveStatuses статусы, освобождающие слот
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}
