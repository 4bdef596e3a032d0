package auth

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opms/m/domain"
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

func sampleRegistration() Registration {
	return Registration{
		SSN:         "123-45-6789",
		FirstName:   "Ada",
		LastName:    "Ng",
		Gender:      "female",
		DateOfBirth: "1990-04-02",
		Phone:       "555-0101",
		Password:    "hunter2",
		Address:     "12 Elm St",
	}
}

func TestRegisterCustomerReturnsSession(t *testing.T) {
	svc := New(newTestDB(t))

	session, err := svc.RegisterCustomer(sampleRegistration())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, session.Role)
	assert.Equal(t, "123-45-6789", session.SSN)
}

func TestRegisterDuplicateSSNLeavesExistingRowIntact(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)

	_, err := svc.RegisterCustomer(sampleRegistration())
	require.NoError(t, err)

	dup := sampleRegistration()
	dup.FirstName = "Impostor"
	_, err = svc.RegisterCustomer(dup)
	require.ErrorIs(t, err, ErrDuplicateSSN)

	var firstName string
	require.NoError(t, db.Get(&firstName, `SELECT first_name FROM customers WHERE ssn = ?`, "123-45-6789"))
	assert.Equal(t, "Ada", firstName)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM customers`))
	assert.Equal(t, 1, count)
}

func TestLoginCustomer(t *testing.T) {
	svc := New(newTestDB(t))
	_, err := svc.RegisterCustomer(sampleRegistration())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		session, err := svc.LoginCustomer("123-45-6789", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleCustomer, session.Role)
		assert.Equal(t, "123-45-6789", session.SSN)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.LoginCustomer("123-45-6789", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown ssn", func(t *testing.T) {
		_, err := svc.LoginCustomer("999-99-9999", "hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthenticateDoctor(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	_, err := db.Exec(`INSERT INTO doctors (doctor_id, first_name, last_name, phone) VALUES (7, 'Gregory', 'House', '555-0102')`)
	require.NoError(t, err)

	session, err := svc.AuthenticateDoctor(7, "555-0102")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDoctor, session.Role)
	assert.Equal(t, int64(7), session.DoctorID)

	_, err = svc.AuthenticateDoctor(7, "555-0000")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.AuthenticateDoctor(8, "555-0102")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateEmployee(t *testing.T) {
	db := newTestDB(t)
	svc := New(db)
	_, err := db.Exec(`INSERT INTO employees (employee_id, first_name, last_name, phone) VALUES (3, 'Sam', 'Ortiz', '555-0103')`)
	require.NoError(t, err)

	session, err := svc.AuthenticateEmployee(3, "555-0103")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, session.Role)
	assert.Equal(t, int64(3), session.EmployeeID)

	_, err = svc.AuthenticateEmployee(3, "555-9999")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminSessionSkipsCredentials(t *testing.T) {
	svc := New(newTestDB(t))
	session := svc.AdminSession()
	assert.Equal(t, domain.RoleAdmin, session.Role)
	assert.Empty(t, session.SSN)
	assert.Zero(t, session.DoctorID)
	assert.Zero(t, session.EmployeeID)
}
