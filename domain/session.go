package domain

// Role identifies the kind of user driving the current session.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDoctor   Role = "doctor"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Action is a menu action code. The numbering is part of the user-facing
// menu contract and is stable across roles.
type Action int

const (
	ActionExit              Action = 0
	ActionRegisterCustomer  Action = 1
	ActionViewPrescriptions Action = 2
	ActionPlaceOrder        Action = 3
	ActionIssuePrescription Action = 4
	ActionProcessOrder      Action = 5
	ActionMonthlyRevenue    Action = 6
	ActionExpiredStock      Action = 7
	ActionAnnualRevenue     Action = 8
	ActionTopDrugs          Action = 9
	ActionTopCustomers      Action = 10
	ActionTopDoctors        Action = 11
	ActionLowStock          Action = 12
)

// Session carries the authenticated identity for the current interactive run.
// Only the identity field matching Role is meaningful; admin sessions carry
// no identity at all.
type Session struct {
	Role       Role
	SSN        string
	DoctorID   int64
	EmployeeID int64
}
