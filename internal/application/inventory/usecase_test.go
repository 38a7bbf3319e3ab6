package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/application/inventory"
	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/infrastructure/memory"
	"github.com/jhoicas/sorveteria-estoque/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	brt     = time.FixedZone("BRT", -3*60*60)
	fixedAt = time.Date(2026, 3, 15, 18, 0, 0, 0, brt)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type fakeCache struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

type fixture struct {
	store     *memory.Store
	products  *memory.ProductRepo
	suppliers *memory.SupplierRepo
	movements *memory.MovementRepo
	cache     *fakeCache
	register  *inventory.RegisterMovementUseCase
	clock     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memory.NewStore(), cache: &fakeCache{}, clock: fixedAt}
	f.products = memory.NewProductRepository(f.store)
	f.suppliers = memory.NewSupplierRepository(f.store)
	f.movements = memory.NewMovementRepository(f.store)
	f.register = inventory.NewRegisterMovementUseCase(
		memory.NewTxRunner(f.store), f.products, f.suppliers, f.movements, f.cache, logger.Nop(),
	).WithClock(func() time.Time { return f.clock })

	ctx := context.Background()
	require.NoError(t, f.suppliers.Create(ctx, &entity.Supplier{ID: "sup-1", Name: "Laticínios Serra", Phone: "(11) 98765-4321"}))
	require.NoError(t, f.products.Create(ctx, &entity.Product{
		ID: "leite", Name: "Leite integral", Category: entity.CategoryRawMaterial,
		Stock: dec("30"), Unit: "L", UnitCost: dec("4.00"), SupplierID: "sup-1", ReorderThreshold: dec("10"),
	}))
	return f
}

func (f *fixture) move(t *testing.T, typ, qty string, cost *decimal.Decimal) *dto.RegisterMovementResponse {
	t.Helper()
	out, err := f.register.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID: "leite", Type: typ, Quantity: dec(qty), UnitCost: cost, SupplierID: "sup-1",
	})
	require.NoError(t, err)
	return out
}

// ── RegisterMovement ─────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaConCosto(t *testing.T) {
	f := newFixture(t)
	out := f.move(t, "receipt", "20", decPtr("5.00"))

	assert.True(t, out.Product.Stock.Equal(dec("50")))
	assert.True(t, out.Product.UnitCost.Equal(dec("5.00")))
	assert.False(t, out.Clamped)
	assert.NotEmpty(t, out.Movement.ID)
	assert.True(t, out.Movement.Timestamp.Equal(fixedAt), "la fecha la asigna el servidor")
	assert.Equal(t, "Laticínios Serra", out.Movement.SupplierName)
	assert.Equal(t, 1, f.cache.calls)

	stored, err := f.products.GetByID(context.Background(), "leite")
	require.NoError(t, err)
	assert.True(t, stored.Stock.Equal(dec("50")))
}

func TestRegisterMovement_SalidaSaturaYAvisa(t *testing.T) {
	f := newFixture(t)
	out := f.move(t, "consumption", "45", decPtr("99"))

	assert.True(t, out.Product.Stock.IsZero())
	assert.True(t, out.Clamped)
	assert.True(t, out.Product.UnitCost.Equal(dec("4.00")), "una salida no cambia el costo")
	assert.Nil(t, out.Movement.UnitCost)
	assert.Empty(t, out.Movement.SupplierID)
	assert.True(t, out.Product.LowStock)
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.register.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID: "nope", Type: "receipt", Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Zero(t, f.cache.calls)

	page, err := f.register.History(context.Background(), dto.MovementHistoryQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Items, "un movimiento rechazado no queda en el historial")
}

func TestRegisterMovement_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	cases := []inventory.MovementInputDTO{
		{ProductID: "", Type: "receipt", Quantity: dec("1")},
		{ProductID: "leite", Type: "adjustment", Quantity: dec("1")},
		{ProductID: "leite", Type: "receipt", Quantity: dec("0")},
		{ProductID: "leite", Type: "consumption", Quantity: dec("-2")},
		{ProductID: "leite", Type: "receipt", Quantity: dec("1"), UnitCost: decPtr("-1")},
	}
	for _, in := range cases {
		_, err := f.register.RegisterMovement(context.Background(), in)
		assert.Error(t, err, "%+v", in)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrInvalidMovement), "%+v: %v", in, err)
	}
	stored, err := f.products.GetByID(context.Background(), "leite")
	require.NoError(t, err)
	assert.True(t, stored.Stock.Equal(dec("30")))
}

func TestRegisterMovement_FalloDeCacheNoFallaElRegistro(t *testing.T) {
	f := newFixture(t)
	f.cache.err = errors.New("redis caído")
	out := f.move(t, "receipt", "1", nil)
	assert.True(t, out.Product.Stock.Equal(dec("31")))
}

func TestRegisterMovement_Concurrente(t *testing.T) {
	f := newFixture(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.register.RegisterMovement(context.Background(), inventory.MovementInputDTO{
				ProductID: "leite", Type: "receipt", Quantity: dec("1"),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := f.products.GetByID(context.Background(), "leite")
	require.NoError(t, err)
	assert.True(t, stored.Stock.Equal(dec("50")), "ninguna escritura se pierde, fue %s", stored.Stock)
}

// ── History ──────────────────────────────────────────────────────────────────

func TestHistory_MasRecientePrimeroYNombreDesconocido(t *testing.T) {
	f := newFixture(t)
	f.move(t, "receipt", "5", decPtr("4.50"))
	f.clock = fixedAt.Add(time.Hour)
	f.move(t, "consumption", "2", nil)
	require.NoError(t, f.suppliers.Delete(context.Background(), "sup-1"))

	page, err := f.register.History(context.Background(), dto.MovementHistoryQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "consumption", page.Items[0].Type)
	assert.Equal(t, "Leite integral", page.Items[0].ProductName)
	assert.Equal(t, dto.UnknownName, page.Items[1].SupplierName)
	assert.Equal(t, 2, page.Page.Total)

	require.NoError(t, f.products.Delete(context.Background(), "leite"))
	page, err = f.register.History(context.Background(), dto.MovementHistoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, dto.UnknownName, page.Items[0].ProductName)

	_, err = f.register.History(context.Background(), dto.MovementHistoryQuery{Type: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Replenishment ────────────────────────────────────────────────────────────

func TestReplenishment_ListaYBorrador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.products.Create(ctx, &entity.Product{
		ID: "cone", Name: "Casquinha", Category: entity.CategoryPackaging,
		Stock: dec("100"), Unit: "un", UnitCost: dec("0.20"), SupplierID: "sup-1", ReorderThreshold: dec("50"),
	}))
	// leite: 30 -> 10 en dos días distintos (10 L/día), queda en el punto de reposición.
	f.clock = fixedAt.AddDate(0, 0, -1)
	f.move(t, "consumption", "12", nil)
	f.clock = fixedAt
	f.move(t, "consumption", "8", nil)

	uc := inventory.NewReplenishmentUseCase(f.products, f.suppliers, f.movements, brt).
		WithClock(func() time.Time { return fixedAt })

	low, err := uc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "leite", low[0].ID)
	assert.Equal(t, "Laticínios Serra", low[0].SupplierName)

	draft, err := uc.DraftLowStockOrder(ctx)
	require.NoError(t, err)
	require.Len(t, draft.Items, 1)
	assert.True(t, draft.Items[0].Quantity.Equal(dec("20")), "2x el punto de reposición")

	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	s := list[0]
	assert.True(t, s.AveragePerActiveDay.Equal(dec("10")))
	assert.True(t, s.SuggestedOrderQty.Equal(dec("300")))
	require.NotNil(t, s.DaysRemaining)
	assert.True(t, s.DaysRemaining.Equal(dec("1")))
	assert.Equal(t, 1, s.Priority)
}

func TestReplenishment_SinConsumoVaAlFinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.products.Create(ctx, &entity.Product{
		ID: "calda", Name: "Calda de chocolate", Stock: dec("1"), Unit: "L", ReorderThreshold: dec("5"),
	}))
	f.move(t, "consumption", "25", nil) // leite 30 -> 5, bajo el punto

	uc := inventory.NewReplenishmentUseCase(f.products, f.suppliers, f.movements, brt).
		WithClock(func() time.Time { return fixedAt })
	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "leite", list[0].ProductID)
	assert.Equal(t, "calda", list[1].ProductID)
	assert.Nil(t, list[1].DaysRemaining)
	assert.True(t, list[1].SuggestedOrderQty.IsZero())
}
