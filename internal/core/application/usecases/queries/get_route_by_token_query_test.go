package queries_test

import (
	"testing"

	"routeplan/internal/core/application/usecases/queries"
	"routeplan/internal/core/domain/model/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetRouteByTokenQuery_Valid(t *testing.T) {
	token, err := route.NewAccessToken()
	require.NoError(t, err)

	query, err := queries.NewGetRouteByTokenQuery(token)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, token.IsEqual(query.Token()))
}

func TestNewGetRouteByTokenQuery_InvalidToken(t *testing.T) {
	_, err := queries.NewGetRouteByTokenQuery(route.AccessToken{})
	require.Error(t, err)
}

func TestGetRouteByTokenQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetRouteByTokenQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetRouteByTokenQueryIsNotConstructed)
}
