package refdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investdesk/pkg/sentinel"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Clients())
	assert.NotEmpty(t, c.Products())
	assert.NotEmpty(t, c.Employees())
	assert.NotEmpty(t, c.Templates())
	assert.NotEmpty(t, c.Profiles())
}

func TestProductLookup(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	prod, err := c.ProductByID(context.Background(), "PROD-003")
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, prod.RiskLevel)

	_, err = c.ProductByID(context.Background(), "PROD-999")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRiskRankOrdering(t *testing.T) {
	assert.Less(t, RiskLow.Rank(), RiskMedium.Rank())
	assert.Less(t, RiskMedium.Rank(), RiskHigh.Rank())
	assert.Zero(t, RiskLevel("Extreme").Rank())
	assert.False(t, RiskLevel("Extreme").Valid())
}

func TestGroupAllowLists(t *testing.T) {
	assert.True(t, GroupConservative.Allows(RiskLow))
	assert.False(t, GroupConservative.Allows(RiskMedium))
	assert.True(t, GroupModerate.Allows(RiskMedium))
	assert.False(t, GroupModerate.Allows(RiskHigh))
	assert.True(t, GroupAggressive.Allows(RiskHigh))
	assert.False(t, InvestmentGroup("Unknown").Allows(RiskLow))
}
