package refdata

import (
	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/shared"
)

// Access policy for reference data. The rules are deliberately pure
// functions over Caller so every service applies them identically:
// a row is loaded first, absence yields NOT_FOUND, and only then is
// ownership checked, so 403 never leaks existence information and 404
// never masks a permission problem.

// RequireSuperadmin guards operations on globally shared directories
// (city writes).
func RequireSuperadmin(caller shared.Caller) error {
	if !caller.IsSuperadmin {
		return shared.ErrForbidden
	}
	return nil
}

// AuthorizeCompanyAccess checks that the caller may act on data owned
// by the given company.
func AuthorizeCompanyAccess(caller shared.Caller, companyID uuid.UUID) error {
	if !caller.OwnsCompany(companyID) {
		return shared.ErrForbidden
	}
	return nil
}

// ApplyCompanyScope conjoins the company filter for list queries over
// company-owned rows. Superadmins see everything and may narrow by an
// explicit company filter; everyone else is forced onto their own
// company and the explicit filter is ignored.
func ApplyCompanyScope(caller shared.Caller, query shared.ListQuery, requested *uuid.UUID) shared.ListQuery {
	if caller.IsSuperadmin {
		if requested != nil {
			return query.WithEquals("company_id", *requested)
		}
		return query
	}
	return query.WithEquals("company_id", caller.CompanyID)
}

// AuthorizeRelatedEntity checks entity visibility through its company
// relations.
func AuthorizeRelatedEntity(caller shared.Caller, relatedCompanyIDs []uuid.UUID) error {
	if caller.IsSuperadmin {
		return nil
	}
	for _, id := range relatedCompanyIDs {
		if id == caller.CompanyID {
			return nil
		}
	}
	return shared.ErrForbidden
}
