package billing

import "fmt"

// ValidationError covers missing or malformed request fields, including
// discount violations. It maps to a client error at the boundary.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// MedicineNotFoundError signals a line item referencing an unknown medicine.
type MedicineNotFoundError struct {
	MedicineID string
}

func (e *MedicineNotFoundError) Error() string {
	return fmt.Sprintf("Medicine with ID %s not found", e.MedicineID)
}

// InsufficientStockError names the medicine along with what was available
// and what was requested.
type InsufficientStockError struct {
	MedicineName string
	Available    int
	Requested    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d",
		e.MedicineName, e.Available, e.Requested)
}
