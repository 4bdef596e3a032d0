package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required by the pharmacy system.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            ssn TEXT PRIMARY KEY,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            gender TEXT,
            date_of_birth TEXT,
            phone TEXT,
            password TEXT NOT NULL,
            address TEXT
        );`,
		`CREATE TABLE IF NOT EXISTS doctors (
            doctor_id INTEGER PRIMARY KEY,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            phone TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS employees (
            employee_id INTEGER PRIMARY KEY,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            phone TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS medicines (
            drug_name TEXT NOT NULL,
            pharmacy_id INTEGER NOT NULL,
            batch_number TEXT NOT NULL,
            stock_quantity INTEGER NOT NULL CHECK (stock_quantity >= 0),
            expiry_date TEXT,
            PRIMARY KEY (drug_name, pharmacy_id, batch_number)
        );`,
		`CREATE TABLE IF NOT EXISTS prescriptions (
            prescription_id INTEGER PRIMARY KEY AUTOINCREMENT,
            prescribed_date TEXT NOT NULL,
            note TEXT,
            customer_ssn TEXT NOT NULL REFERENCES customers(ssn),
            doctor_id INTEGER NOT NULL REFERENCES doctors(doctor_id)
        );`,
		`CREATE TABLE IF NOT EXISTS prescribed_drugs (
            prescription_id INTEGER NOT NULL REFERENCES prescriptions(prescription_id),
            drug_name TEXT NOT NULL,
            prescribed_quantity INTEGER NOT NULL,
            refill_limit INTEGER NOT NULL DEFAULT 0
        );`,
		`CREATE TABLE IF NOT EXISTS orders (
            order_id INTEGER PRIMARY KEY AUTOINCREMENT,
            order_date TEXT NOT NULL,
            total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            type TEXT,
            status TEXT NOT NULL DEFAULT 'incomplete',
            customer_ssn TEXT NOT NULL REFERENCES customers(ssn),
            employee_id INTEGER NOT NULL REFERENCES employees(employee_id),
            prescription_id INTEGER REFERENCES prescriptions(prescription_id)
        );`,
		`CREATE TABLE IF NOT EXISTS ordered_drugs (
            order_id INTEGER NOT NULL REFERENCES orders(order_id),
            drug_name TEXT NOT NULL,
            pharmacy_id INTEGER NOT NULL,
            batch_number TEXT NOT NULL,
            ordered_quantity INTEGER NOT NULL,
            price DOUBLE PRECISION NOT NULL
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
