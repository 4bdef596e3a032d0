package domain

// Doctor and Employee rows pre-exist in the store; they are seeded, never
// created interactively.

type Doctor struct {
	DoctorID  int64  `db:"doctor_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Phone     string `db:"phone"`
}

type Employee struct {
	EmployeeID int64  `db:"employee_id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Phone      string `db:"phone"`
}
