package seed

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
)

// LoadDoctors ingests the doctor roster CSV, ignoring duplicates.
// Expected columns: doctor_id, first_name, last_name, phone.
func LoadDoctors(db *sqlx.DB, csvPath string) {
	loadStaff(db, csvPath, "doctors",
		`INSERT OR IGNORE INTO doctors (doctor_id, first_name, last_name, phone) VALUES (?, ?, ?, ?)`)
}

// LoadEmployees ingests the employee roster CSV, ignoring duplicates.
// Expected columns: employee_id, first_name, last_name, phone.
func LoadEmployees(db *sqlx.DB, csvPath string) {
	loadStaff(db, csvPath, "employees",
		`INSERT OR IGNORE INTO employees (employee_id, first_name, last_name, phone) VALUES (?, ?, ?, ?)`)
}

func loadStaff(db *sqlx.DB, csvPath, table, insert string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load %s roster %s: %v", table, csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read %s header: %v", table, err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start %s transaction: %v", table, err)
		return
	}
	stmt, err := tx.Preparex(insert)
	if err != nil {
		log.Printf("unable to prepare %s insert: %v", table, err)
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read %s row: %v", table, err)
			continue
		}
		if len(record) < 4 {
			continue
		}
		id := strings.TrimSpace(record[0])
		firstName := strings.TrimSpace(record[1])
		lastName := strings.TrimSpace(record[2])
		phone := strings.TrimSpace(record[3])

		if id == "" || firstName == "" {
			continue
		}

		if _, err := stmt.Exec(id, firstName, lastName, phone); err != nil {
			log.Printf("unable to insert into %s: %v", table, err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit %s seed: %v", table, err)
	} else {
		log.Printf("seeded %s with %d rows", table, rows)
	}
}
