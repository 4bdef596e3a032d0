package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	DatabaseDSN       string
	LowStockThreshold int64
	MedicineCSV       string
	DoctorCSV         string
	EmployeeCSV       string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "opms.db"
	}

	threshold := int64(10)
	if raw := os.Getenv("LOW_STOCK_THRESHOLD"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			log.Printf("invalid LOW_STOCK_THRESHOLD value %q, defaulting to %d", raw, threshold)
		} else {
			threshold = parsed
		}
	}

	return Config{
		DatabaseDSN:       dsn,
		LowStockThreshold: threshold,
		MedicineCSV:       envOr("MEDICINE_CSV", "assets/medicines.csv"),
		DoctorCSV:         envOr("DOCTOR_CSV", "assets/doctors.csv"),
		EmployeeCSV:       envOr("EMPLOYEE_CSV", "assets/employees.csv"),
	}
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
