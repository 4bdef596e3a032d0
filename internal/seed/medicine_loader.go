package seed

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
)

// LoadMedicines ingests the CSV of medicine batches, ignoring duplicates.
// Expected columns: drug_name, pharmacy_id, batch_number, stock_quantity,
// expiry_date (expiry may be blank).
func LoadMedicines(db *sqlx.DB, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load medicine catalog %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read medicine header: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start medicine transaction: %v", err)
		return
	}
	stmt, err := tx.Preparex(`INSERT OR IGNORE INTO medicines (drug_name, pharmacy_id, batch_number, stock_quantity, expiry_date) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		log.Printf("unable to prepare medicine insert: %v", err)
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
			log.Printf("unable to read medicine row: %v", err)
			continue
		}
		if len(record) < 4 {
			continue
		}
		drugName := strings.TrimSpace(record[0])
		pharmacyID := strings.TrimSpace(record[1])
		batchNumber := strings.TrimSpace(record[2])
		stock := strings.TrimSpace(record[3])
		var expiry any
		if len(record) > 4 && strings.TrimSpace(record[4]) != "" {
			expiry = strings.TrimSpace(record[4])
		}

		if drugName == "" || batchNumber == "" {
			continue
		}

		if _, err := stmt.Exec(drugName, pharmacyID, batchNumber, stock, expiry); err != nil {
			log.Printf("unable to insert medicine %s: %v", drugName, err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit medicine seed: %v", err)
	} else {
		log.Printf("seeded medicine catalog with %d rows", rows)
	}
}
