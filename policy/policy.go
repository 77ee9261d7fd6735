// Package policy is the authorization gate: one declarative table mapping
// (resource, action) to the conditions a request must meet. Handlers never
// compare role strings inline; they go through Evaluate (usually via the
// route middleware) so the rules live in one place and are testable without
// a running server.
package policy

import (
	"github.com/doctoraps/clinic-backend/apperr"
	"github.com/doctoraps/clinic-backend/models"
)

type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceTenants       Resource = "tenants"
	ResourceAccounts      Resource = "accounts"
	ResourceDoctors       Resource = "doctors"
	ResourcePatients      Resource = "patients"
	ResourceFamily        Resource = "family"
	ResourceAppointments  Resource = "appointments"
	ResourcePrescriptions Resource = "prescriptions"
	ResourcePayments      Resource = "payments"
	ResourceAvailability  Resource = "availability"
	ResourceStats         Resource = "stats"
)

// Rule describes what a single (resource, action) pair demands. The zero
// Rule means "any authenticated caller".
type Rule struct {
	RequireTenant bool
	RequiredRole  string
}

func tenantRule() Rule    { return Rule{RequireTenant: true} }
func adminRule() Rule     { return Rule{RequiredRole: models.RoleAdmin} }
func authenticated() Rule { return Rule{} }

// table is the whole policy. Mutating a doctor profile is admin-only; every
// tenant-owned resource needs a resolved tenant for writes; reads on scoped
// resources are allowed without a tenant because scoped listing fails closed
// to an empty set anyway.
var table = map[Resource]map[Action]Rule{
	ResourceTenants: {
		ActionList: authenticated(),
		ActionRead: authenticated(),
	},
	ResourceAccounts: {
		ActionList:   authenticated(),
		ActionRead:   authenticated(),
		ActionCreate: tenantRule(),
		ActionUpdate: authenticated(),
		ActionDelete: adminRule(),
	},
	ResourceDoctors: {
		ActionList:   authenticated(),
		ActionRead:   authenticated(),
		ActionCreate: adminRule(),
		ActionUpdate: adminRule(),
		ActionDelete: adminRule(),
	},
	ResourcePatients: {
		ActionList:   authenticated(),
		ActionRead:   authenticated(),
		ActionCreate: tenantRule(),
		ActionUpdate: tenantRule(),
		ActionDelete: tenantRule(),
	},
	ResourceFamily: {
		ActionList:   authenticated(),
		ActionRead:   authenticated(),
		ActionCreate: tenantRule(),
		ActionUpdate: tenantRule(),
		ActionDelete: tenantRule(),
	},
	ResourceAppointments: {
		ActionList:   authenticated(),
		ActionRead:   authenticated(),
		ActionCreate: tenantRule(),
		ActionUpdate: tenantRule(),
		ActionDelete: tenantRule(),
	},
	ResourcePrescriptions: {
		ActionList:   authenticated(),
		ActionRead:   authenticated(),
		ActionCreate: tenantRule(),
		ActionUpdate: tenantRule(),
		ActionDelete: tenantRule(),
	},
	ResourcePayments: {
		ActionList:   authenticated(),
		ActionRead:   authenticated(),
		ActionCreate: tenantRule(),
		ActionUpdate: tenantRule(),
		ActionDelete: tenantRule(),
	},
	ResourceAvailability: {
		ActionList:   authenticated(),
		ActionRead:   authenticated(),
		ActionCreate: authenticated(),
		ActionUpdate: authenticated(),
		ActionDelete: authenticated(),
	},
	ResourceStats: {
		ActionRead: authenticated(),
	},
}

// Evaluate decides allow/deny for an authenticated caller. hasTenant is
// whether the resolver bound a tenant to the request; role is the caller's
// role claim. A nil return means allow.
func Evaluate(hasTenant bool, role string, resource Resource, action Action) error {
	actions, ok := table[resource]
	if !ok {
		return apperr.ErrForbidden
	}
	rule, ok := actions[action]
	if !ok {
		return apperr.ErrForbidden
	}
	if rule.RequireTenant && !hasTenant {
		return apperr.ErrTenantRequired
	}
	if rule.RequiredRole != "" && role != rule.RequiredRole {
		return apperr.ErrForbidden
	}
	return nil
}
