package workflow

import "github.com/pkg/errors"

var (
	// ErrDoctorRequired rejects prescription issuance from any session that
	// is not a doctor's.
	ErrDoctorRequired = errors.New("a doctor session is required")
	// ErrEmployeeRequired rejects order processing from any session that is
	// not an employee's.
	ErrEmployeeRequired = errors.New("an employee session is required")
	// ErrNotOwner rejects completing an order that is not the session
	// employee's own incomplete order.
	ErrNotOwner = errors.New("not your order or already processed")
	// ErrProcessingRace reports an order that passed the ownership check but
	// was completed concurrently before the update landed. The zero
	// affected-row count of the conditional update is the only signal.
	ErrProcessingRace = errors.New("order was processed concurrently")
)
