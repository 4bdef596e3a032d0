package auth

import "opms/m/domain"

// Gate maps each role to the menu actions it may invoke. The policy is fixed
// at construction; nothing mutates it afterwards.
type Gate struct {
	perms map[domain.Role][]domain.Action
}

// NewGate builds the authorization policy. Action lists are in menu display
// order, exit last. Registration (action 1) is permitted to no role: it only
// happens before login.
func NewGate() *Gate {
	return &Gate{perms: map[domain.Role][]domain.Action{
		domain.RoleCustomer: {
			domain.ActionViewPrescriptions,
			domain.ActionPlaceOrder,
			domain.ActionExit,
		},
		domain.RoleDoctor: {
			domain.ActionIssuePrescription,
			domain.ActionExit,
		},
		domain.RoleEmployee: {
			domain.ActionProcessOrder,
			domain.ActionExit,
		},
		domain.RoleAdmin: {
			domain.ActionMonthlyRevenue,
			domain.ActionExpiredStock,
			domain.ActionAnnualRevenue,
			domain.ActionTopDrugs,
			domain.ActionTopCustomers,
			domain.ActionTopDoctors,
			domain.ActionLowStock,
			domain.ActionExit,
		},
	}}
}

// Allowed reports whether the role may invoke the action.
func (g *Gate) Allowed(role domain.Role, action domain.Action) bool {
	for _, a := range g.perms[role] {
		if a == action {
			return true
		}
	}
	return false
}

// Actions returns the role's permitted actions in menu order.
func (g *Gate) Actions(role domain.Role) []domain.Action {
	out := make([]domain.Action, len(g.perms[role]))
	copy(out, g.perms[role])
	return out
}
