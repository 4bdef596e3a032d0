package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"opms/m/domain"
	"opms/m/internal/auth"
	"opms/m/internal/report"
	"opms/m/internal/workflow"
)

var actionLabels = map[domain.Action]string{
	domain.ActionExit:              "Exit",
	domain.ActionRegisterCustomer:  "Register Customer",
	domain.ActionViewPrescriptions: "View Prescriptions",
	domain.ActionPlaceOrder:        "Place Order",
	domain.ActionIssuePrescription: "Issue Prescription",
	domain.ActionProcessOrder:      "Process Order",
	domain.ActionMonthlyRevenue:    "Monthly Revenue Report",
	domain.ActionExpiredStock:      "View Expired Stock",
	domain.ActionAnnualRevenue:     "Annual Revenue Report",
	domain.ActionTopDrugs:          "Top 5 Most Sold Drugs Report",
	domain.ActionTopCustomers:      "Top 5 Customers by Spending Report",
	domain.ActionTopDoctors:        "Top 5 Doctors by Prescriptions Report",
	domain.ActionLowStock:          "Low Stock Medicines Report",
}

var roleNouns = map[domain.Role]string{
	domain.RoleCustomer: "customers",
	domain.RoleDoctor:   "doctors",
	domain.RoleEmployee: "employees",
	domain.RoleAdmin:    "administrators",
}

// App drives the interactive session: role selection, authentication, and
// the role-gated action menu.
type App struct {
	term          *Terminal
	auth          *auth.Service
	gate          *auth.Gate
	orders        *workflow.OrderService
	prescriptions *workflow.PrescriptionService
	reports       *report.Service
}

// NewApp wires the application together.
func NewApp(term *Terminal, authSvc *auth.Service, gate *auth.Gate,
	orders *workflow.OrderService, prescriptions *workflow.PrescriptionService,
	reports *report.Service) *App {
	return &App{
		term:          term,
		auth:          authSvc,
		gate:          gate,
		orders:        orders,
		prescriptions: prescriptions,
		reports:       reports,
	}
}

// Run loops role selection and the per-session menu until the user exits or
// input runs out.
func (a *App) Run() {
	for {
		session, exit := a.selectRole()
		if exit {
			break
		}
		a.term.Pause()
		a.menuLoop(session)
		if a.term.EOF() {
			break
		}
	}
	a.term.Message("System exited gracefully.")
}

// selectRole prompts for a role and authenticates it. The second return is
// true when the user chose to exit the program.
func (a *App) selectRole() (domain.Session, bool) {
	for {
		if a.term.EOF() {
			return domain.Session{}, true
		}
		a.term.Message("Select your role:")
		a.term.Message("1. Customer")
		a.term.Message("2. Doctor")
		a.term.Message("3. Employee")
		a.term.Message("4. Admin")
		a.term.Message("0. Exit")

		switch a.term.PromptInt("Enter role number") {
		case 1:
			session, ok := a.customerEntry()
			if ok {
				return session, false
			}
		case 2:
			doctorID := a.term.PromptInt("Enter Doctor ID")
			phone := a.term.Prompt("Enter Phone")
			session, err := a.auth.AuthenticateDoctor(doctorID, phone)
			if err != nil {
				a.displayAuthError(err, "Invalid Doctor ID or Phone.")
				continue
			}
			a.term.Message("Doctor role validated successfully.")
			return session, false
		case 3:
			employeeID := a.term.PromptInt("Enter Employee ID")
			phone := a.term.Prompt("Enter Phone")
			session, err := a.auth.AuthenticateEmployee(employeeID, phone)
			if err != nil {
				a.displayAuthError(err, "Invalid Employee ID or Phone.")
				continue
			}
			a.term.Message("Employee role validated successfully.")
			return session, false
		case 4:
			a.term.Message("Admin role selected (no validation).")
			return a.auth.AdminSession(), false
		case 0:
			return domain.Session{}, true
		default:
			a.term.Errorf("invalid role choice")
		}
	}
}

// customerEntry handles the register-or-login submenu for customers.
func (a *App) customerEntry() (domain.Session, bool) {
	a.term.Message("Are you a new customer or existing?")
	a.term.Message("1. New (Register)")
	a.term.Message("2. Existing (Login)")

	switch a.term.PromptInt("Enter choice") {
	case 1:
		reg := auth.Registration{
			SSN:         a.term.Prompt("SSN"),
			FirstName:   a.term.Prompt("First Name"),
			LastName:    a.term.Prompt("Last Name"),
			Gender:      a.term.Prompt("Gender (male/female)"),
			DateOfBirth: a.term.PromptDate("Date of Birth (YYYY-MM-DD)"),
			Phone:       a.term.Prompt("Phone"),
			Password:    a.term.Prompt("Password"),
			Address:     a.term.Prompt("Address"),
		}
		session, err := a.auth.RegisterCustomer(reg)
		if err != nil {
			a.term.Errorf("registration failed: %v", err)
			return domain.Session{}, false
		}
		a.term.Message("Registration and login successful.")
		return session, true
	case 2:
		ssn := a.term.Prompt("Enter SSN")
		password := a.term.Prompt("Enter Password")
		session, err := a.auth.LoginCustomer(ssn, password)
		if err != nil {
			a.displayAuthError(err, "Invalid SSN or Password.")
			return domain.Session{}, false
		}
		a.term.Message("Customer role validated successfully.")
		return session, true
	default:
		a.term.Errorf("invalid choice")
		return domain.Session{}, false
	}
}

func (a *App) displayAuthError(err error, invalidMsg string) {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		a.term.Errorf("%s", invalidMsg)
		return
	}
	a.term.Errorf("validation failed: %v", err)
}

// menuLoop renders the gate-filtered menu and dispatches selections until
// the session exits. Every selection is re-checked against the gate, so a
// directly typed action number gains nothing.
func (a *App) menuLoop(session domain.Session) {
	for {
		if a.term.EOF() {
			return
		}
		a.term.Message("--- Online Pharmacy Management System ---")
		for _, action := range a.gate.Actions(session.Role) {
			a.term.Message(fmt.Sprintf("%d. %s", action, actionLabels[action]))
		}

		choice := domain.Action(a.term.PromptInt("Enter your choice"))
		if a.term.EOF() {
			return
		}
		if !a.gate.Allowed(session.Role, choice) {
			a.term.Errorf("insufficient permissions: this function is not open to %s", roleNouns[session.Role])
			continue
		}
		if choice == domain.ActionExit {
			return
		}
		a.dispatch(session, choice)
		a.term.Pause()
	}
}

func (a *App) dispatch(session domain.Session, action domain.Action) {
	switch action {
	case domain.ActionViewPrescriptions:
		a.runViewPrescriptions(session)
	case domain.ActionPlaceOrder:
		a.runPlaceOrder(session)
	case domain.ActionIssuePrescription:
		a.runIssuePrescription(session)
	case domain.ActionProcessOrder:
		a.runProcessOrder(session)
	case domain.ActionMonthlyRevenue:
		a.runMonthlyRevenue()
	case domain.ActionExpiredStock:
		a.runExpiredStock()
	case domain.ActionAnnualRevenue:
		a.runAnnualRevenue()
	case domain.ActionTopDrugs:
		a.runTopDrugs()
	case domain.ActionTopCustomers:
		a.runTopCustomers()
	case domain.ActionTopDoctors:
		a.runTopDoctors()
	case domain.ActionLowStock:
		a.runLowStock()
	}
}

// customerSSN resolves the SSN a workflow should target: customers always
// act for themselves, other roles name the customer.
func (a *App) customerSSN(session domain.Session) string {
	if session.Role == domain.RoleCustomer {
		return session.SSN
	}
	return a.term.Prompt("Customer SSN")
}

func (a *App) runViewPrescriptions(session domain.Session) {
	ssn := a.customerSSN(session)
	if session.Role == domain.RoleCustomer {
		a.term.Message("Viewing prescriptions for SSN: " + ssn)
	}
	views, err := a.prescriptions.ByCustomer(ssn)
	if err != nil {
		a.term.Errorf("unable to load prescriptions: %v", err)
		return
	}
	if len(views) == 0 {
		a.term.Message("No prescriptions found.")
		return
	}
	rows := make([][]string, len(views))
	for i, v := range views {
		rows[i] = []string{
			strconv.FormatInt(v.PrescriptionID, 10),
			v.PrescribedDate,
			v.Note,
			v.DoctorName,
		}
	}
	a.term.Table([]string{"ID", "Date", "Note", "Doctor"}, rows)

	for _, v := range views {
		drugs, err := a.prescriptions.DrugsFor(v.PrescriptionID)
		if err != nil {
			a.term.Errorf("unable to load drugs for prescription %d: %v", v.PrescriptionID, err)
			return
		}
		a.term.Message(fmt.Sprintf("Prescription %d drugs:", v.PrescriptionID))
		drugRows := make([][]string, len(drugs))
		for i, d := range drugs {
			drugRows[i] = []string{d.DrugName, strconv.FormatInt(d.Quantity, 10), strconv.FormatInt(d.RefillLimit, 10)}
		}
		a.term.Table([]string{"Drug Name", "Quantity", "Refill Limit"}, drugRows)
	}
}

func (a *App) runPlaceOrder(session domain.Session) {
	a.term.Message("--- Place Order ---")
	in := workflow.OrderInput{
		CustomerSSN:    a.customerSSN(session),
		PrescriptionID: a.term.PromptInt("Prescription ID"),
		EmployeeID:     a.term.PromptInt("Employee ID"),
		OrderDate:      a.term.PromptDate("Order Date (YYYY-MM-DD)"),
		Type:           a.term.Prompt("Type (urgent/normal)"),
	}
	for {
		item := workflow.OrderItem{
			DrugName:    a.term.Prompt("Drug Name"),
			PharmacyID:  a.term.PromptInt("Pharmacy ID"),
			BatchNumber: a.term.Prompt("Batch Number"),
			Quantity:    a.term.PromptInt("Quantity"),
			Price:       a.term.PromptFloat("Price"),
		}
		in.Items = append(in.Items, item)
		if a.term.Prompt("Add another drug? (y/n)") != "y" {
			break
		}
	}

	result, err := a.orders.Place(session, in)
	if err != nil {
		a.term.Errorf("order placement failed: %v", err)
		return
	}
	for _, name := range result.Skipped {
		a.term.Errorf("insufficient stock for %s", name)
	}
	a.term.Message(fmt.Sprintf("Order %d placed successfully. Total: %.2f", result.OrderID, result.TotalAmount))
}

func (a *App) runIssuePrescription(session domain.Session) {
	a.term.Message("--- Issue Prescription ---")
	in := workflow.PrescriptionInput{
		CustomerSSN: a.term.Prompt("Customer SSN"),
		Date:        a.term.PromptDate("Prescribed Date (YYYY-MM-DD)"),
		Note:        a.term.Prompt("Note"),
	}
	for {
		drug := workflow.PrescribedDrug{
			DrugName:    a.term.Prompt("Drug Name"),
			Quantity:    a.term.PromptInt("Quantity"),
			RefillLimit: a.term.PromptInt("Refill Limit"),
		}
		in.Drugs = append(in.Drugs, drug)
		if a.term.Prompt("Add another drug? (y/n)") != "y" {
			break
		}
	}

	prescriptionID, err := a.prescriptions.Issue(session, in)
	if err != nil {
		a.term.Errorf("prescription issuance failed: %v", err)
		return
	}
	a.term.Message(fmt.Sprintf("Prescription %d issued successfully.", prescriptionID))
}

func (a *App) runProcessOrder(session domain.Session) {
	a.term.Message("--- Process Order ---")
	orders, err := a.orders.ListIncomplete(session.EmployeeID)
	if err != nil {
		a.term.Errorf("unable to list orders: %v", err)
		return
	}
	if len(orders) == 0 {
		a.term.Message("No incomplete orders found.")
		return
	}
	rows := make([][]string, len(orders))
	for i, o := range orders {
		rows[i] = []string{
			strconv.FormatInt(o.OrderID, 10),
			o.OrderDate,
			strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
			o.Type,
			o.CustomerSSN,
			strconv.FormatInt(o.PrescriptionID, 10),
		}
	}
	a.term.Table([]string{"Order ID", "Date", "Total Amount", "Type", "Customer SSN", "Prescription ID"}, rows)

	orderID := a.term.PromptInt("Enter Order ID to process")
	switch err := a.orders.Complete(session, orderID); {
	case errors.Is(err, workflow.ErrNotOwner):
		a.term.Errorf("you can only process your own incomplete orders")
	case err != nil:
		a.term.Errorf("failed to process order: %v", err)
	default:
		a.term.Message("Order processed successfully.")
	}
}

func (a *App) runMonthlyRevenue() {
	raw := a.term.Prompt("Enter Month (YYYY-MM)")
	parsed, err := time.Parse("2006-01", raw)
	if err != nil {
		a.term.Errorf("expected a month in YYYY-MM format, got %q", raw)
		return
	}
	revenue, err := a.reports.MonthlyRevenue(parsed.Year(), parsed.Month())
	if err != nil {
		a.term.Errorf("unable to compute revenue: %v", err)
		return
	}
	a.term.Message(fmt.Sprintf("Monthly Revenue: %.2f", revenue))
}

func (a *App) runAnnualRevenue() {
	year := a.term.PromptInt("Enter Year (YYYY)")
	revenue, err := a.reports.AnnualRevenue(int(year))
	if err != nil {
		a.term.Errorf("unable to compute revenue: %v", err)
		return
	}
	a.term.Message(fmt.Sprintf("Annual Revenue: %.2f", revenue))
}

func (a *App) runExpiredStock() {
	entries, err := a.reports.ExpiredStock(time.Now())
	if err != nil {
		a.term.Errorf("unable to load expired stock: %v", err)
		return
	}
	if len(entries) == 0 {
		a.term.Message("No expired stock found.")
		return
	}
	rows := make([][]string, len(entries))
	for i, m := range entries {
		expiry := ""
		if m.ExpiryDate != nil {
			expiry = *m.ExpiryDate
		}
		rows[i] = []string{m.DrugName, strconv.FormatInt(m.PharmacyID, 10), m.BatchNumber, expiry}
	}
	a.term.Table([]string{"Drug Name", "Pharmacy ID", "Batch Number", "Expiry Date"}, rows)
}

func (a *App) runTopDrugs() {
	a.term.Message("--- Top 5 Most Sold Drugs Report ---")
	sales, err := a.reports.TopDrugs()
	if err != nil {
		a.term.Errorf("unable to load report: %v", err)
		return
	}
	if len(sales) == 0 {
		a.term.Message("No data found.")
		return
	}
	rows := make([][]string, len(sales))
	for i, s := range sales {
		rows[i] = []string{s.DrugName, strconv.FormatInt(s.TotalSold, 10)}
	}
	a.term.Table([]string{"Drug Name", "Total Sold"}, rows)
}

func (a *App) runTopCustomers() {
	a.term.Message("--- Top 5 Customers by Spending Report ---")
	spend, err := a.reports.TopCustomers()
	if err != nil {
		a.term.Errorf("unable to load report: %v", err)
		return
	}
	if len(spend) == 0 {
		a.term.Message("No data found.")
		return
	}
	rows := make([][]string, len(spend))
	for i, s := range spend {
		rows[i] = []string{s.CustomerName, strconv.FormatFloat(s.TotalSpent, 'f', 2, 64)}
	}
	a.term.Table([]string{"Customer Name", "Total Spent"}, rows)
}

func (a *App) runTopDoctors() {
	a.term.Message("--- Top 5 Doctors by Prescriptions Report ---")
	activity, err := a.reports.TopDoctors()
	if err != nil {
		a.term.Errorf("unable to load report: %v", err)
		return
	}
	if len(activity) == 0 {
		a.term.Message("No data found.")
		return
	}
	rows := make([][]string, len(activity))
	for i, d := range activity {
		rows[i] = []string{d.DoctorName, strconv.FormatInt(d.PrescriptionCount, 10)}
	}
	a.term.Table([]string{"Doctor Name", "Prescription Count"}, rows)
}

func (a *App) runLowStock() {
	a.term.Message("--- Low Stock Medicines Report ---")
	entries, err := a.reports.LowStock()
	if err != nil {
		a.term.Errorf("unable to load report: %v", err)
		return
	}
	if len(entries) == 0 {
		a.term.Message("No low stock found.")
		return
	}
	rows := make([][]string, len(entries))
	for i, m := range entries {
		rows[i] = []string{m.DrugName, strconv.FormatInt(m.PharmacyID, 10), m.BatchNumber, strconv.FormatInt(m.StockQuantity, 10)}
	}
	a.term.Table([]string{"Drug Name", "Pharmacy ID", "Batch Number", "Stock Quantity"}, rows)
}
