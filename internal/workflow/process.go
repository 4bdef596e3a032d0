package workflow

import (
	"database/sql"

	"github.com/pkg/errors"

	"opms/m/domain"
)

// ListIncomplete returns the employee's unprocessed orders, oldest first.
func (s *OrderService) ListIncomplete(employeeID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.Select(&orders, `SELECT order_id, order_date, total_amount, type, status, customer_ssn, employee_id, prescription_id
        FROM orders WHERE employee_id = ? AND status = ? ORDER BY order_id`,
		employeeID, domain.OrderIncomplete)
	if err != nil {
		return nil, errors.Wrap(err, "list incomplete orders")
	}
	return orders, nil
}

// Complete transitions one of the session employee's incomplete orders to
// complete. Another employee's order, an already-completed order, and an
// unknown order all fail the same way: ErrNotOwner.
func (s *OrderService) Complete(session domain.Session, orderID int64) error {
	if session.Role != domain.RoleEmployee {
		return ErrEmployeeRequired
	}

	var one int
	err := s.db.Get(&one, `SELECT 1 FROM orders WHERE order_id = ? AND employee_id = ? AND status = ?`,
		orderID, session.EmployeeID, domain.OrderIncomplete)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotOwner
	}
	if err != nil {
		return errors.Wrap(err, "verify order ownership")
	}

	// The status condition makes the transition single-shot: whoever loses a
	// concurrent race sees zero affected rows instead of silently double
	// completing.
	res, err := s.db.Exec(`UPDATE orders SET status = ? WHERE order_id = ? AND employee_id = ? AND status = ?`,
		domain.OrderComplete, orderID, session.EmployeeID, domain.OrderIncomplete)
	if err != nil {
		return errors.Wrap(err, "complete order")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "read affected rows")
	}
	if affected == 0 {
		return ErrProcessingRace
	}
	return nil
}
