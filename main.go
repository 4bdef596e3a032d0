package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"opms/m/internal/auth"
	"opms/m/internal/cli"
	"opms/m/internal/config"
	"opms/m/internal/database"
	"opms/m/internal/migrations"
	"opms/m/internal/report"
	"opms/m/internal/seed"
	"opms/m/internal/workflow"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.LoadMedicines(db, cfg.MedicineCSV)
	seed.LoadDoctors(db, cfg.DoctorCSV)
	seed.LoadEmployees(db, cfg.EmployeeCSV)

	log.Printf("OPMS starting (database %s)", cfg.DatabaseDSN)

	term := cli.NewTerminal(os.Stdin, os.Stdout)
	app := cli.NewApp(term,
		auth.New(db),
		auth.NewGate(),
		workflow.NewOrderService(db),
		workflow.NewPrescriptionService(db),
		report.New(db, cfg.LowStockThreshold),
	)
	app.Run()
}
