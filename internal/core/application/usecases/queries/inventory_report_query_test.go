package queries_test

import (
	"testing"

	"restring/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryReportQuery_Valid(t *testing.T) {
	query := queries.NewInventoryReportQuery()

	require.NoError(t, query.Validate())
}

func TestInventoryReportQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.InventoryReportQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrInventoryReportQueryIsNotConstructed)
}
