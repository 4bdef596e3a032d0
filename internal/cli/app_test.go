package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opms/m/internal/auth"
	"opms/m/internal/database"
	"opms/m/internal/migrations"
	"opms/m/internal/report"
	"opms/m/internal/workflow"
)

// runScript drives a full application session over scripted input and
// returns everything written to the terminal.
func runScript(t *testing.T, db *sqlx.DB, input string) string {
	t.Helper()
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(input), &out)
	app := NewApp(term,
		auth.New(db),
		auth.NewGate(),
		workflow.NewOrderService(db),
		workflow.NewPrescriptionService(db),
		report.New(db, 10),
	)
	app.Run()
	return out.String()
}

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db := database.Connect(":memory:")
	t.Cleanup(func() { db.Close() })
	migrations.Run(db)
	return db
}

func TestAdminSessionRunsReportAndExits(t *testing.T) {
	db := newTestDB(t)

	// Role 4 (admin), pause, low stock report, pause, exit menu, exit program.
	output := runScript(t, db, "4\n\n12\n\n0\n0\n")

	assert.Contains(t, output, "Admin role selected (no validation).")
	assert.Contains(t, output, "No low stock found.")
	assert.Contains(t, output, "System exited gracefully.")
}

func TestEmployeeIsDeniedAdminReports(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`INSERT INTO employees (employee_id, first_name, last_name, phone) VALUES (3, 'Sam', 'Ortiz', '555-0103')`)
	require.NoError(t, err)

	// Role 3, employee credentials, pause, then action 6 typed directly
	// (monthly revenue, admin only), then exit.
	output := runScript(t, db, "3\n3\n555-0103\n\n6\n0\n0\n")

	assert.Contains(t, output, "Employee role validated successfully.")
	assert.Contains(t, output, "insufficient permissions")
	assert.Contains(t, output, "employees")
	assert.NotContains(t, output, "Monthly Revenue:")
}

func TestEmployeeMenuHidesAdminActions(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`INSERT INTO employees (employee_id, first_name, last_name, phone) VALUES (3, 'Sam', 'Ortiz', '555-0103')`)
	require.NoError(t, err)

	output := runScript(t, db, "3\n3\n555-0103\n\n0\n0\n")

	assert.Contains(t, output, "5. Process Order")
	assert.NotContains(t, output, "6. Monthly Revenue Report")
	assert.NotContains(t, output, "3. Place Order")
}

func TestBadRoleInputIsRecoverable(t *testing.T) {
	db := newTestDB(t)

	output := runScript(t, db, "abc\n0\n")

	assert.Contains(t, output, `expected a number, got "abc"`)
	assert.Contains(t, output, "System exited gracefully.")
}

func TestFailedLoginReturnsToRoleSelection(t *testing.T) {
	db := newTestDB(t)

	// Customer login with no such account, then exit.
	output := runScript(t, db, "1\n2\n999-99-9999\nnope\n0\n")

	assert.Contains(t, output, "Invalid SSN or Password.")
	assert.Contains(t, output, "System exited gracefully.")
}

func TestCustomerRegistersAndPlacesOrder(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`INSERT INTO medicines (drug_name, pharmacy_id, batch_number, stock_quantity) VALUES ('Aspirin', 1, 'B1', 5)`)
	require.NoError(t, err)

	script := strings.Join([]string{
		"1",          // role: customer
		"1",          // new customer
		"111-11-1111",
		"Ada",
		"Ng",
		"female",
		"1990-04-02",
		"555-0101",
		"hunter2",
		"12 Elm St",
		"",           // pause after login
		"3",          // place order
		"1",          // prescription id
		"1",          // employee id
		"2024-05-10", // order date
		"normal",     // type
		"Aspirin",
		"1",   // pharmacy id
		"B1",  // batch
		"2",   // quantity
		"3.5", // price
		"n",   // no more drugs
		"",    // pause after order
		"0",   // exit menu
		"0",   // exit program
	}, "\n") + "\n"

	output := runScript(t, db, script)

	assert.Contains(t, output, "Registration and login successful.")
	assert.Contains(t, output, "placed successfully. Total: 7.00")

	var stock int64
	require.NoError(t, db.Get(&stock, `SELECT stock_quantity FROM medicines WHERE drug_name = 'Aspirin'`))
	assert.Equal(t, int64(3), stock)

	var ssn string
	require.NoError(t, db.Get(&ssn, `SELECT customer_ssn FROM orders ORDER BY order_id DESC LIMIT 1`))
	assert.Equal(t, "111-11-1111", ssn)
}

func TestEmployeeProcessesOwnOrder(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`INSERT INTO employees (employee_id, first_name, last_name, phone) VALUES (3, 'Sam', 'Ortiz', '555-0103')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO orders (order_date, total_amount, type, status, customer_ssn, employee_id, prescription_id)
        VALUES ('2024-05-10', 12.5, 'normal', 'incomplete', '111-11-1111', 3, 1)`)
	require.NoError(t, err)

	// Login as employee 3, process order 1, exit.
	output := runScript(t, db, "3\n3\n555-0103\n\n5\n1\n\n0\n0\n")

	assert.Contains(t, output, "Order processed successfully.")

	var status string
	require.NoError(t, db.Get(&status, `SELECT status FROM orders WHERE order_id = 1`))
	assert.Equal(t, "complete", status)
}
