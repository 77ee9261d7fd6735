package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/doctoraps/clinic-backend/models"
)

// TenantScope restricts a query to rows owned by the given tenant. When no
// tenant was resolved for the request the scope fails closed: the query
// matches nothing, so listings come back empty instead of leaking rows
// across clinics.
func TenantScope(tenant *models.Tenant) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if tenant == nil {
			return tx.Where("1 = 0")
		}
		return tx.Where("tenant_id = ?", tenant.ID)
	}
}

// IsUniqueViolation reports whether err came from a storage-level unique
// constraint. The constraint, not the application pre-check, is what
// serializes concurrent inserts; callers map this to a Conflict response.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
