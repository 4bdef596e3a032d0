package domain

type Customer struct {
	SSN         string `db:"ssn"`
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	Gender      string `db:"gender"`
	DateOfBirth string `db:"date_of_birth"`
	Phone       string `db:"phone"`
	Password    string `db:"password"`
	Address     string `db:"address"`
}
