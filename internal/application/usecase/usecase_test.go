package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/application/usecase"
	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// countingCache cuenta las invalidaciones de la caché de reportes.
type countingCache struct{ invalidated int }

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidated++
	return nil
}

func strPtr(s string) *string { return &s }

func newUseCases() (*usecase.ProductUseCase, *usecase.SupplierUseCase) {
	store := memory.NewStore()
	suppliers := memory.NewSupplierRepository(store)
	return usecase.NewProductUseCase(memory.NewProductRepository(store), suppliers),
		usecase.NewSupplierUseCase(suppliers)
}

// ── Proveedores ──────────────────────────────────────────────────────────────

func TestSupplier_TelefonoObligatorio(t *testing.T) {
	_, suppliers := newUseCases()
	ctx := context.Background()

	_, err := suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Frutas do Vale", Phone: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, err := suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Frutas do Vale", Phone: "11 91234-5678"})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	_, err = suppliers.Update(ctx, s.ID, dto.UpdateSupplierRequest{Phone: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := suppliers.Update(ctx, s.ID, dto.UpdateSupplierRequest{PaymentTerms: strPtr("30 dias")})
	require.NoError(t, err)
	assert.Equal(t, "30 dias", updated.PaymentTerms)

	_, err = suppliers.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Productos ────────────────────────────────────────────────────────────────

func TestProduct_CreateValida(t *testing.T) {
	products, _ := newUseCases()
	ctx := context.Background()
	cases := []dto.CreateProductRequest{
		{Name: "", Category: "syrup", Unit: "L"},
		{Name: "Calda", Category: "bebida", Unit: "L"},
		{Name: "Calda", Category: "syrup", Unit: ""},
		{Name: "Calda", Category: "syrup", Unit: "L", Stock: dec("-1")},
		{Name: "Calda", Category: "syrup", Unit: "L", ReorderThreshold: dec("-1")},
		{Name: "Calda", Category: "syrup", Unit: "L", Stock: dec("0.00006")},
		{Name: "Calda", Category: "syrup", Unit: "L", UnitCost: dec("1.23456")},
		{Name: "Calda", Category: "syrup", Unit: "L", ReorderThreshold: dec("100000000000000")},
	}
	for _, in := range cases {
		_, err := products.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestProduct_UpdateNoCambiaStockYResuelveProveedor(t *testing.T) {
	products, suppliers := newUseCases()
	ctx := context.Background()
	sup, err := suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Doces Sul", Phone: "51 3333-4444"})
	require.NoError(t, err)

	p, err := products.Create(ctx, dto.CreateProductRequest{
		Name: "Granulado", Category: string(entity.CategoryTopping), Unit: "kg",
		Stock: dec("3"), UnitCost: dec("12.5"), ReorderThreshold: dec("3"), SupplierID: sup.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Doces Sul", p.SupplierName)
	assert.True(t, p.LowStock, "stock igual al punto de reposición es bajo")

	threshold := dec("1")
	updated, err := products.Update(ctx, p.ID, dto.UpdateProductRequest{ReorderThreshold: &threshold})
	require.NoError(t, err)
	assert.False(t, updated.LowStock)
	assert.True(t, updated.Stock.Equal(dec("3")))
	assert.True(t, updated.UnitCost.Equal(dec("12.5")))

	require.NoError(t, suppliers.Delete(ctx, sup.ID))
	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.UnknownName, got.SupplierName)

	_, err = products.Update(ctx, "nope", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_ListFiltraPorCategoria(t *testing.T) {
	products, _ := newUseCases()
	ctx := context.Background()
	for _, in := range []dto.CreateProductRequest{
		{Name: "Pote 1L", Category: "packaging", Unit: "un"},
		{Name: "Massa de baunilha", Category: "ice-cream", Unit: "kg"},
		{Name: "Colher", Category: "packaging", Unit: "un"},
	} {
		_, err := products.Create(ctx, in)
		require.NoError(t, err)
	}

	all, err := products.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)

	packaging, err := products.List(ctx, "packaging")
	require.NoError(t, err)
	require.Len(t, packaging.Items, 2)
	assert.Equal(t, "Colher", packaging.Items[0].Name)
}

func TestProduct_CuatroDecimalesAceptados(t *testing.T) {
	products, _ := newUseCases()
	ctx := context.Background()

	p, err := products.Create(ctx, dto.CreateProductRequest{
		Name: "Essência", Category: "raw-material", Unit: "L",
		Stock: dec("0.1250"), UnitCost: dec("31.9999"), ReorderThreshold: dec("0.5000"),
	})
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(dec("0.125")))

	tooFine := dec("0.00001")
	_, err = products.Update(ctx, p.ID, dto.UpdateProductRequest{ReorderThreshold: &tooFine})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Invalidación de reportes ─────────────────────────────────────────────────

func TestCatalogo_InvalidaReportes(t *testing.T) {
	store := memory.NewStore()
	cache := &countingCache{}
	supplierRepo := memory.NewSupplierRepository(store)
	products := usecase.NewProductUseCase(memory.NewProductRepository(store), supplierRepo).WithCache(cache, nil)
	suppliers := usecase.NewSupplierUseCase(supplierRepo).WithCache(cache, nil)
	ctx := context.Background()

	sup, err := suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Doces Sul", Phone: "51 3333-4444"})
	require.NoError(t, err)
	_, err = suppliers.Update(ctx, sup.ID, dto.UpdateSupplierRequest{Name: strPtr("Doces do Sul")})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidated)

	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Cobertura", Category: "syrup", Unit: "L"})
	require.NoError(t, err)
	_, err = products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr("Cobertura de chocolate")})
	require.NoError(t, err)
	require.NoError(t, products.Delete(ctx, p.ID))
	require.NoError(t, suppliers.Delete(ctx, sup.ID))
	assert.Equal(t, 6, cache.invalidated)

	assert.ErrorIs(t, products.Delete(ctx, p.ID), domain.ErrNotFound)
	assert.ErrorIs(t, suppliers.Delete(ctx, sup.ID), domain.ErrNotFound)
	assert.Equal(t, 6, cache.invalidated, "una baja fallida no invalida")

	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "", Category: "syrup", Unit: "L"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 6, cache.invalidated)
}
