package service

import (
	"context"
	"testing"

	"nedpos/internal/dto"
	"nedpos/internal/model"
	"nedpos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeStock(t *testing.T) {
	t.Run("plain product clamps at zero", func(t *testing.T) {
		p := &model.Product{Stock: 2}
		changed := takeStock(p, nil, 5)
		assert.Empty(t, changed)
		assert.Equal(t, 0, p.Stock)
	})

	t.Run("chosen variant", func(t *testing.T) {
		a, b := uuid.New(), uuid.New()
		p := &model.Product{Variants: []model.Variant{{ID: a, Stock: 3}, {ID: b, Stock: 4}}}
		changed := takeStock(p, &b, 2)
		require.Len(t, changed, 1)
		assert.Equal(t, b, changed[0].ID)
		assert.Equal(t, 2, p.Variants[1].Stock)
		assert.Equal(t, 5, p.Stock)
	})

	t.Run("no variant drains in order", func(t *testing.T) {
		p := &model.Product{Variants: []model.Variant{{ID: uuid.New(), Stock: 0}, {ID: uuid.New(), Stock: 1}, {ID: uuid.New(), Stock: 5}}}
		changed := takeStock(p, nil, 3)
		require.Len(t, changed, 2)
		assert.Equal(t, 0, p.Variants[1].Stock)
		assert.Equal(t, 3, p.Variants[2].Stock)
		assert.Equal(t, 3, p.Stock)
	})

	t.Run("removed variant falls through", func(t *testing.T) {
		missing := uuid.New()
		p := &model.Product{Variants: []model.Variant{{ID: uuid.New(), Stock: 2}}}
		changed := takeStock(p, &missing, 1)
		require.Len(t, changed, 1)
		assert.Equal(t, 1, p.Stock)
	})
}

func TestAdjustStock(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	plain := e.seedProduct(t, &model.Product{Name: "Socks", Stock: 5, ReorderPoint: 1})
	p, err := e.inventory.AdjustStock(ctx, plain.ID, dto.AdjustStockRequest{Delta: -10, Reason: "inventory count"})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, 0, e.reload(t, plain.ID).Stock)

	moves, _, err := e.movements.List(ctx, repository.StockMovementFilter{ProductID: &plain.ID, Kind: model.MovementManualAdjust})
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, -5, moves[0].Quantity)
	assert.Equal(t, "inventory count", moves[0].Reason)

	// Staying low keeps a single unread notification.
	_, err = e.inventory.AdjustStock(ctx, plain.ID, dto.AdjustStockRequest{Delta: 1, Reason: "found one"})
	require.NoError(t, err)
	notes, err := e.notifications.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	withVariants := e.seedProduct(t, &model.Product{Name: "Hijab", Variants: []model.Variant{{Color: "Sand", Stock: 1}}})
	_, err = e.inventory.AdjustStock(ctx, withVariants.ID, dto.AdjustStockRequest{Delta: 3, Reason: "restock"})
	assert.ErrorIs(t, err, ErrVariantRequired)

	vid := withVariants.Variants[0].ID.String()
	p, err = e.inventory.AdjustStock(ctx, withVariants.ID, dto.AdjustStockRequest{VariantID: &vid, Delta: 3, Reason: "restock"})
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock)

	pressing := e.seedProduct(t, &model.Product{Name: "Pressing", TransactionType: model.TransactionService})
	_, err = e.inventory.AdjustStock(ctx, pressing.ID, dto.AdjustStockRequest{Delta: 1, Reason: "nope"})
	assert.ErrorIs(t, err, ErrServiceStock)

	_, err = e.inventory.AdjustStock(ctx, uuid.New(), dto.AdjustStockRequest{Delta: 1, Reason: "nope"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestLowStock_ListsOnlyTrackedProducts(t *testing.T) {
	e := newTestEnv(t)
	e.seedProduct(t, &model.Product{Name: "Cap", Stock: 0, ReorderPoint: 1})
	e.seedProduct(t, &model.Product{Name: "Coat", Stock: 9, ReorderPoint: 1})
	e.seedProduct(t, &model.Product{Name: "Ironing", TransactionType: model.TransactionService})

	list, err := e.inventory.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cap", list[0].Name)
}
