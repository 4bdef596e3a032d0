package domain

const (
	OrderIncomplete = "incomplete"
	OrderComplete   = "complete"
)

type Order struct {
	OrderID        int64   `db:"order_id"`
	OrderDate      string  `db:"order_date"`
	TotalAmount    float64 `db:"total_amount"`
	Type           string  `db:"type"`
	Status         string  `db:"status"`
	CustomerSSN    string  `db:"customer_ssn"`
	EmployeeID     int64   `db:"employee_id"`
	PrescriptionID int64   `db:"prescription_id"`
}
