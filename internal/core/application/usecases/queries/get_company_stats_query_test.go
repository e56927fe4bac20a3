package queries_test

import (
	"testing"

	"routeplan/internal/core/application/usecases/queries"
	"routeplan/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCompanyStatsQuery_Valid(t *testing.T) {
	companyID := kernel.NewUUID()
	query, err := queries.NewGetCompanyStatsQuery(companyID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, companyID.IsEqual(query.CompanyID()))
}

func TestNewGetCompanyStatsQuery_InvalidCompanyID(t *testing.T) {
	_, err := queries.NewGetCompanyStatsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetCompanyStatsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetCompanyStatsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetCompanyStatsQueryIsNotConstructed)
}
