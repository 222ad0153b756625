package refdata

import (
	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
)

// resolveTargetCompany picks the company a write lands on. Regular
// callers always write into their own company; a superadmin must name
// one explicitly since their token carries none.
func resolveTargetCompany(caller shared.Caller, requested *uuid.UUID) (uuid.UUID, error) {
	if requested != nil {
		if err := refdata.AuthorizeCompanyAccess(caller, *requested); err != nil {
			return uuid.Nil, err
		}
		return *requested, nil
	}
	if caller.CompanyID != uuid.Nil {
		return caller.CompanyID, nil
	}
	return uuid.Nil, shared.NewValidationError("company_id is required")
}
