package refdata

import (
	"testing"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireSuperadmin(t *testing.T) {
	assert.NoError(t, RequireSuperadmin(shared.Caller{IsSuperadmin: true}))
	assert.ErrorIs(t, RequireSuperadmin(shared.Caller{}), shared.ErrForbidden)
}

func TestAuthorizeCompanyAccess(t *testing.T) {
	companyID := uuid.New()

	assert.NoError(t, AuthorizeCompanyAccess(shared.Caller{IsSuperadmin: true}, companyID))
	assert.NoError(t, AuthorizeCompanyAccess(shared.Caller{CompanyID: companyID}, companyID))
	assert.ErrorIs(t, AuthorizeCompanyAccess(shared.Caller{CompanyID: uuid.New()}, companyID), shared.ErrForbidden)
}

func TestApplyCompanyScope_NonSuperadminForced(t *testing.T) {
	own := uuid.New()
	other := uuid.New()
	caller := shared.Caller{CompanyID: own}

	// The explicit filter must not widen visibility.
	q := ApplyCompanyScope(caller, shared.ListQuery{}, &other)
	require.NotNil(t, q.Equals)
	assert.Equal(t, own, q.Equals["company_id"])
}

func TestApplyCompanyScope_Superadmin(t *testing.T) {
	caller := shared.Caller{IsSuperadmin: true}

	q := ApplyCompanyScope(caller, shared.ListQuery{}, nil)
	assert.Nil(t, q.Equals)

	requested := uuid.New()
	q = ApplyCompanyScope(caller, shared.ListQuery{}, &requested)
	assert.Equal(t, requested, q.Equals["company_id"])
}

func TestAuthorizeRelatedEntity(t *testing.T) {
	companyID := uuid.New()
	caller := shared.Caller{CompanyID: companyID}

	assert.NoError(t, AuthorizeRelatedEntity(caller, []uuid.UUID{uuid.New(), companyID}))
	assert.ErrorIs(t, AuthorizeRelatedEntity(caller, []uuid.UUID{uuid.New()}), shared.ErrForbidden)
	assert.ErrorIs(t, AuthorizeRelatedEntity(caller, nil), shared.ErrForbidden)
	assert.NoError(t, AuthorizeRelatedEntity(shared.Caller{IsSuperadmin: true}, nil))
}
