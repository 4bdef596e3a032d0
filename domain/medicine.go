package domain

// Medicine is one batch of a drug at one pharmacy, keyed by the triple
// (drug name, pharmacy, batch).
type Medicine struct {
	DrugName      string  `db:"drug_name"`
	PharmacyID    int64   `db:"pharmacy_id"`
	BatchNumber   string  `db:"batch_number"`
	StockQuantity int64   `db:"stock_quantity"`
	ExpiryDate    *string `db:"expiry_date"`
}
