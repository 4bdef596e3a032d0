package workflow

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"opms/m/internal/database"
	"opms/m/internal/migrations"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db := database.Connect(":memory:")
	t.Cleanup(func() { db.Close() })
	migrations.Run(db)
	return db
}

func seedMedicine(t *testing.T, db *sqlx.DB, drug string, pharmacyID int64, batch string, stock int64) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO medicines (drug_name, pharmacy_id, batch_number, stock_quantity) VALUES (?, ?, ?, ?)`,
		drug, pharmacyID, batch, stock)
	require.NoError(t, err)
}

func seedDoctor(t *testing.T, db *sqlx.DB, id int64, first, last string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO doctors (doctor_id, first_name, last_name, phone) VALUES (?, ?, ?, '555-0100')`,
		id, first, last)
	require.NoError(t, err)
}

func stockOf(t *testing.T, db *sqlx.DB, drug string, pharmacyID int64, batch string) int64 {
	t.Helper()
	var stock int64
	require.NoError(t, db.Get(&stock, `SELECT stock_quantity FROM medicines WHERE drug_name = ? AND pharmacy_id = ? AND batch_number = ?`,
		drug, pharmacyID, batch))
	return stock
}

func orderStatus(t *testing.T, db *sqlx.DB, orderID int64) string {
	t.Helper()
	var status string
	require.NoError(t, db.Get(&status, `SELECT status FROM orders WHERE order_id = ?`, orderID))
	return status
}
