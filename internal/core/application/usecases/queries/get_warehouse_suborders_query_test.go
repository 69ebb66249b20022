package queries_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetWarehouseSubOrdersQuery(t *testing.T) {
	t.Run("should create query with valid warehouse ID", func(t *testing.T) {
		warehouseID := kernel.NewUUID()

		query, err := queries.NewGetWarehouseSubOrdersQuery(warehouseID)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, warehouseID.IsEqual(query.WarehouseID()))
	})

	t.Run("should reject zero warehouse ID", func(t *testing.T) {
		_, err := queries.NewGetWarehouseSubOrdersQuery(kernel.UUID{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject query not built via constructor", func(t *testing.T) {
		var query queries.GetWarehouseSubOrdersQuery

		err := query.Validate()

		assert.ErrorIs(t, err, queries.ErrGetWarehouseSubOrdersQueryIsNotConstructed)
	})
}
