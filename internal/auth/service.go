package auth

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"opms/m/domain"
)

var (
	// ErrInvalidCredentials rejects any login where the supplied
	// credentials do not identify exactly one stored row.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateSSN rejects registration under an SSN that already exists.
	ErrDuplicateSSN = errors.New("ssn already registered")
)

// Service validates credentials against the store and produces sessions.
// It never establishes a partial session: the returned Session is fully
// populated or the error is non-nil.
type Service struct {
	db *sqlx.DB
}

// New constructs a Service.
func New(db *sqlx.DB) *Service {
	return &Service{db: db}
}

// Registration carries the fields collected for a new customer.
type Registration struct {
	SSN         string
	FirstName   string
	LastName    string
	Gender      string
	DateOfBirth string
	Phone       string
	Password    string
	Address     string
}

// RegisterCustomer creates the customer row and returns a live session for
// it. The SSN is externally supplied, never generated; a duplicate surfaces
// as ErrDuplicateSSN and leaves the existing row untouched.
func (s *Service) RegisterCustomer(reg Registration) (domain.Session, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Session{}, errors.Wrap(err, "secure password")
	}

	_, err = s.db.Exec(`INSERT INTO customers (ssn, first_name, last_name, gender, date_of_birth, phone, password, address)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.SSN, reg.FirstName, reg.LastName, reg.Gender, reg.DateOfBirth, reg.Phone, string(hashed), reg.Address)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "unique constraint") {
			return domain.Session{}, ErrDuplicateSSN
		}
		return domain.Session{}, errors.Wrap(err, "insert customer")
	}
	return domain.Session{Role: domain.RoleCustomer, SSN: reg.SSN}, nil
}

// LoginCustomer authenticates an existing customer by SSN and password.
func (s *Service) LoginCustomer(ssn, password string) (domain.Session, error) {
	var customer domain.Customer
	err := s.db.Get(&customer, `SELECT ssn, first_name, last_name, gender, date_of_birth, phone, password, address
        FROM customers WHERE ssn = ?`, ssn)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, errors.Wrap(err, "load customer")
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(password)) != nil {
		return domain.Session{}, ErrInvalidCredentials
	}
	return domain.Session{Role: domain.RoleCustomer, SSN: customer.SSN}, nil
}

// AuthenticateDoctor matches a doctor row on ID and phone exactly.
func (s *Service) AuthenticateDoctor(doctorID int64, phone string) (domain.Session, error) {
	var doctor domain.Doctor
	err := s.db.Get(&doctor, `SELECT doctor_id, first_name, last_name, phone
        FROM doctors WHERE doctor_id = ? AND phone = ?`, doctorID, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, errors.Wrap(err, "load doctor")
	}
	return domain.Session{Role: domain.RoleDoctor, DoctorID: doctor.DoctorID}, nil
}

// AuthenticateEmployee matches an employee row on ID and phone exactly.
func (s *Service) AuthenticateEmployee(employeeID int64, phone string) (domain.Session, error) {
	var employee domain.Employee
	err := s.db.Get(&employee, `SELECT employee_id, first_name, last_name, phone
        FROM employees WHERE employee_id = ? AND phone = ?`, employeeID, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, errors.Wrap(err, "load employee")
	}
	return domain.Session{Role: domain.RoleEmployee, EmployeeID: employee.EmployeeID}, nil
}

// AdminSession returns an admin session without any credential check. Admin
// access ships as a demo bypass; a production deployment would put a real
// credential here.
func (s *Service) AdminSession() domain.Session {
	return domain.Session{Role: domain.RoleAdmin}
}
