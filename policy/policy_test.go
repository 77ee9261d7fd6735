package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doctoraps/clinic-backend/apperr"
	"github.com/doctoraps/clinic-backend/models"
)

func TestDoctorMutationsRequireAdmin(t *testing.T) {
	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
		assert.NoError(t, Evaluate(true, models.RoleAdmin, ResourceDoctors, action))
		assert.ErrorIs(t, Evaluate(true, models.RoleDoctor, ResourceDoctors, action),
			apperr.ErrForbidden)
		assert.ErrorIs(t, Evaluate(true, models.RoleAgent, ResourceDoctors, action),
			apperr.ErrForbidden)
	}
}

func TestDoctorReadsOpenToAuthenticated(t *testing.T) {
	for _, role := range []string{models.RoleDoctor, models.RolePatient, models.RoleAgent,
		models.RoleManagement, models.RoleAdmin} {
		assert.NoError(t, Evaluate(false, role, ResourceDoctors, ActionList))
		assert.NoError(t, Evaluate(true, role, ResourceDoctors, ActionRead))
	}
}

func TestScopedWritesRequireTenant(t *testing.T) {
	scoped := []Resource{ResourceAccounts, ResourcePatients, ResourceFamily,
		ResourceAppointments, ResourcePrescriptions, ResourcePayments}
	for _, resource := range scoped {
		assert.ErrorIs(t, Evaluate(false, models.RoleAdmin, resource, ActionCreate),
			apperr.ErrTenantRequired, string(resource))
		assert.NoError(t, Evaluate(true, models.RoleAdmin, resource, ActionCreate),
			string(resource))
	}
}

func TestScopedReadsAllowedWithoutTenant(t *testing.T) {
	// Reads fall through to the data scope, which returns empty sets when
	// no tenant is bound; the gate itself does not deny them.
	for _, resource := range []Resource{ResourcePatients, ResourceAppointments,
		ResourcePrescriptions, ResourcePayments} {
		assert.NoError(t, Evaluate(false, models.RolePatient, resource, ActionList))
	}
}

func TestUnknownResourceOrActionDenied(t *testing.T) {
	assert.ErrorIs(t, Evaluate(true, models.RoleAdmin, Resource("secrets"), ActionList),
		apperr.ErrForbidden)
	assert.ErrorIs(t, Evaluate(true, models.RoleAdmin, ResourceStats, ActionDelete),
		apperr.ErrForbidden)
}

func TestTenantsReadOnly(t *testing.T) {
	assert.NoError(t, Evaluate(false, models.RolePatient, ResourceTenants, ActionList))
	assert.ErrorIs(t, Evaluate(true, models.RoleAdmin, ResourceTenants, ActionCreate),
		apperr.ErrForbidden)
}
