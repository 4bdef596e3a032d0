package workflow

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"opms/m/domain"
)

// OrderService owns the order placement and order processing workflows.
type OrderService struct {
	db *sqlx.DB
}

// NewOrderService constructs an OrderService.
func NewOrderService(db *sqlx.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderItem is one requested drug line for an order.
type OrderItem struct {
	DrugName    string
	PharmacyID  int64
	BatchNumber string
	Quantity    int64
	Price       float64
}

// OrderInput carries everything collected for a new order. CustomerSSN is
// ignored for customer sessions, which always order for themselves.
type OrderInput struct {
	CustomerSSN    string
	PrescriptionID int64
	EmployeeID     int64
	OrderDate      string
	Type           string
	Items          []OrderItem
}

// OrderResult reports what the placement workflow actually committed.
type OrderResult struct {
	OrderID     int64
	TotalAmount float64
	// Skipped lists the drug names left off the order for lack of stock.
	Skipped []string
}

// Place creates an order and attaches as many of the requested line items as
// stock allows, all inside one transaction.
//
// A short-stocked item is skipped, not an error: the order still commits with
// the fulfilled items and a total reflecting exactly those items. An order
// whose every item was skipped commits with total 0 and status incomplete,
// deliberately leaving an audit trail of the attempt. Only a store failure
// rolls the whole workflow back.
func (s *OrderService) Place(session domain.Session, in OrderInput) (OrderResult, error) {
	ssn := in.CustomerSSN
	if session.Role == domain.RoleCustomer {
		ssn = session.SSN
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return OrderResult{}, errors.Wrap(err, "begin order")
	}
	defer tx.Rollback()

	// The order row exists before any line item is attached; its ID comes
	// from the store's own sequence, so concurrent placements cannot collide.
	var orderID int64
	err = tx.QueryRowx(`INSERT INTO orders (order_date, total_amount, type, status, customer_ssn, employee_id, prescription_id)
        VALUES (?, 0, ?, ?, ?, ?, ?) RETURNING order_id`,
		in.OrderDate, in.Type, domain.OrderIncomplete, ssn, in.EmployeeID, in.PrescriptionID).Scan(&orderID)
	if err != nil {
		return OrderResult{}, errors.Wrap(err, "insert order")
	}

	result := OrderResult{OrderID: orderID}
	var total float64
	for _, item := range in.Items {
		var medicine domain.Medicine
		err := tx.Get(&medicine, `SELECT drug_name, pharmacy_id, batch_number, stock_quantity, expiry_date
            FROM medicines WHERE drug_name = ? AND pharmacy_id = ? AND batch_number = ?`,
			item.DrugName, item.PharmacyID, item.BatchNumber)
		if errors.Is(err, sql.ErrNoRows) {
			result.Skipped = append(result.Skipped, item.DrugName)
			continue
		}
		if err != nil {
			return OrderResult{}, errors.Wrapf(err, "check stock for %s", item.DrugName)
		}
		if medicine.StockQuantity < item.Quantity {
			result.Skipped = append(result.Skipped, item.DrugName)
			continue
		}

		if _, err := tx.Exec(`INSERT INTO ordered_drugs (order_id, drug_name, pharmacy_id, batch_number, ordered_quantity, price)
            VALUES (?, ?, ?, ?, ?, ?)`,
			orderID, item.DrugName, item.PharmacyID, item.BatchNumber, item.Quantity, item.Price); err != nil {
			return OrderResult{}, errors.Wrapf(err, "insert line item for %s", item.DrugName)
		}

		// The guard repeats the stock condition so the decrement can never
		// drive stock below zero, even against concurrent writers.
		res, err := tx.Exec(`UPDATE medicines SET stock_quantity = stock_quantity - ?
            WHERE drug_name = ? AND pharmacy_id = ? AND batch_number = ? AND stock_quantity >= ?`,
			item.Quantity, item.DrugName, item.PharmacyID, item.BatchNumber, item.Quantity)
		if err != nil {
			return OrderResult{}, errors.Wrapf(err, "debit stock for %s", item.DrugName)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return OrderResult{}, errors.Wrap(err, "read affected rows")
		}
		if affected == 0 {
			return OrderResult{}, errors.Errorf("stock for %s changed underneath the order", item.DrugName)
		}

		total += item.Price * float64(item.Quantity)
	}

	if _, err := tx.Exec(`UPDATE orders SET total_amount = ? WHERE order_id = ?`, total, orderID); err != nil {
		return OrderResult{}, errors.Wrap(err, "update order total")
	}

	if err := tx.Commit(); err != nil {
		return OrderResult{}, errors.Wrap(err, "commit order")
	}
	result.TotalAmount = total
	return result, nil
}
