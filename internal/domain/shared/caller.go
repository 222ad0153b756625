package shared

import "github.com/google/uuid"

// Caller identifies the authenticated principal a request acts on
// behalf of. It is built once from verified token claims and passed to
// services as a value; services never see raw claims.
type Caller struct {
	UserID       uuid.UUID
	CompanyID    uuid.UUID
	IsSuperadmin bool
	Permissions  []string
}

// HasPermission checks whether the caller holds a specific permission.
// Superadmins implicitly hold every permission.
func (c Caller) HasPermission(permission string) bool {
	if c.IsSuperadmin {
		return true
	}
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// OwnsCompany reports whether the caller may act on data belonging to
// the given company.
func (c Caller) OwnsCompany(companyID uuid.UUID) bool {
	if c.IsSuperadmin {
		return true
	}
	return c.CompanyID == companyID
}
