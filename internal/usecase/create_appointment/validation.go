package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/PetCare-PortalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID == "" {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}

	if req.PetID == "" {
		return fmt.Errorf("%w: petID is required", ErrInvalidInput)
	}

	if req.BranchID == "" {
		return fmt.Errorf("%w: branchID is required", ErrInvalidInput)
	}

	if req.DoctorID == "" {
		return fmt.Errorf("%w: doctorID is required", ErrInvalidInput)
	}

	if !domain.ValidServiceType(domain.ServiceType(req.ServiceType)) {
		return ErrInvalidServiceType
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что момент записи не в прошлом
func validateDate(scheduledAt time.Time, now time.Time) error {
	if scheduledAt.Before(now) {
		return ErrInvalidDate
	}
	return nil
}
