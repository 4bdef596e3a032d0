// Package report holds the read-only aggregate queries behind the admin
// menu. Revenue figures cover completed orders only; every top-N query
// carries a deterministic secondary order so ties render stably.
package report

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"opms/m/domain"
)

// Service runs the reporting queries.
type Service struct {
	db                *sqlx.DB
	lowStockThreshold int64
}

// New constructs a Service. lowStockThreshold is the stock quantity below
// which a batch counts as low.
func New(db *sqlx.DB, lowStockThreshold int64) *Service {
	return &Service{db: db, lowStockThreshold: lowStockThreshold}
}

// MonthlyRevenue sums completed-order totals for one calendar month.
func (s *Service) MonthlyRevenue(year int, month time.Month) (float64, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return s.revenueBetween(start, start.AddDate(0, 1, 0))
}

// AnnualRevenue sums completed-order totals for one calendar year.
func (s *Service) AnnualRevenue(year int) (float64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return s.revenueBetween(start, start.AddDate(1, 0, 0))
}

func (s *Service) revenueBetween(start, end time.Time) (float64, error) {
	var revenue float64
	err := s.db.Get(&revenue, `SELECT COALESCE(SUM(total_amount), 0) FROM orders
        WHERE status = ? AND order_date >= ? AND order_date < ?`,
		domain.OrderComplete, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return 0, errors.Wrap(err, "sum revenue")
	}
	return revenue, nil
}

// DrugSales is one row of the top-drugs report.
type DrugSales struct {
	DrugName  string `db:"drug_name"`
	TotalSold int64  `db:"total_sold"`
}

// TopDrugs returns at most five drugs by quantity sold on completed orders.
func (s *Service) TopDrugs() ([]DrugSales, error) {
	var rows []DrugSales
	err := s.db.Select(&rows, `SELECT od.drug_name, SUM(od.ordered_quantity) AS total_sold
        FROM ordered_drugs od JOIN orders o ON od.order_id = o.order_id
        WHERE o.status = ?
        GROUP BY od.drug_name
        ORDER BY total_sold DESC, od.drug_name ASC
        LIMIT 5`, domain.OrderComplete)
	if err != nil {
		return nil, errors.Wrap(err, "top drugs")
	}
	return rows, nil
}

// CustomerSpend is one row of the top-customers report.
type CustomerSpend struct {
	CustomerName string  `db:"customer_name"`
	TotalSpent   float64 `db:"total_spent"`
}

// TopCustomers returns at most five customers by spend on completed orders.
func (s *Service) TopCustomers() ([]CustomerSpend, error) {
	var rows []CustomerSpend
	err := s.db.Select(&rows, `SELECT c.first_name || ' ' || c.last_name AS customer_name,
            SUM(o.total_amount) AS total_spent
        FROM orders o JOIN customers c ON o.customer_ssn = c.ssn
        WHERE o.status = ?
        GROUP BY c.ssn, c.first_name, c.last_name
        ORDER BY total_spent DESC, customer_name ASC
        LIMIT 5`, domain.OrderComplete)
	if err != nil {
		return nil, errors.Wrap(err, "top customers")
	}
	return rows, nil
}

// DoctorActivity is one row of the top-doctors report.
type DoctorActivity struct {
	DoctorName        string `db:"doctor_name"`
	PrescriptionCount int64  `db:"prescription_count"`
}

// TopDoctors returns at most five doctors by prescriptions issued.
func (s *Service) TopDoctors() ([]DoctorActivity, error) {
	var rows []DoctorActivity
	err := s.db.Select(&rows, `SELECT d.first_name || ' ' || d.last_name AS doctor_name,
            COUNT(p.prescription_id) AS prescription_count
        FROM prescriptions p JOIN doctors d ON p.doctor_id = d.doctor_id
        GROUP BY d.doctor_id, d.first_name, d.last_name
        ORDER BY prescription_count DESC, doctor_name ASC
        LIMIT 5`)
	if err != nil {
		return nil, errors.Wrap(err, "top doctors")
	}
	return rows, nil
}

// LowStock returns every batch below the configured threshold, emptiest
// first.
func (s *Service) LowStock() ([]domain.Medicine, error) {
	var rows []domain.Medicine
	err := s.db.Select(&rows, `SELECT drug_name, pharmacy_id, batch_number, stock_quantity, expiry_date
        FROM medicines WHERE stock_quantity < ?
        ORDER BY stock_quantity ASC, drug_name ASC`, s.lowStockThreshold)
	if err != nil {
		return nil, errors.Wrap(err, "low stock")
	}
	return rows, nil
}

// ExpiredStock returns every batch whose expiry date is strictly before
// asOf. The reference date is passed in rather than read from the clock.
func (s *Service) ExpiredStock(asOf time.Time) ([]domain.Medicine, error) {
	var rows []domain.Medicine
	err := s.db.Select(&rows, `SELECT drug_name, pharmacy_id, batch_number, stock_quantity, expiry_date
        FROM medicines WHERE expiry_date IS NOT NULL AND expiry_date < ?
        ORDER BY expiry_date ASC, drug_name ASC`, asOf.Format("2006-01-02"))
	if err != nil {
		return nil, errors.Wrap(err, "expired stock")
	}
	return rows, nil
}
