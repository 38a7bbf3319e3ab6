package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jhoicas/sorveteria-estoque/internal/application/analytics"
	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
	"github.com/jhoicas/sorveteria-estoque/internal/infrastructure/memory"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisReportCache(rdb, 5*time.Minute), mr
}

func TestEntryKey(t *testing.T) {
	assert.Equal(t, "reports:v0:purchases:30", entryKey(0, "purchases:30"))
	assert.Equal(t, "reports:v12:price-drift", entryKey(12, "price-drift"))
}

func TestRedisReportCache_GetSinEntrada(t *testing.T) {
	c, _ := newTestCache(t)

	var out dto.PurchasesReportResponse
	hit, gen, err := c.Get(context.Background(), "purchases:30", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(0), gen)
}

func TestRedisReportCache_SetGetConDecimales(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	in := dto.PurchasesReportResponse{
		WindowDays: 30,
		Total:      decimal.RequireFromString("1234.5678"),
		Suppliers: []dto.SupplierPurchasesDTO{{
			SupplierID: "s1", SupplierName: "Laticínios Serra",
			Quantity: decimal.RequireFromString("10.25"), Value: decimal.RequireFromString("1234.5678"), Count: 3,
		}},
	}

	_, gen, err := c.Get(ctx, "purchases:30", &dto.PurchasesReportResponse{})
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, gen, "purchases:30", in))

	var out dto.PurchasesReportResponse
	hit, _, err := c.Get(ctx, "purchases:30", &out)
	require.NoError(t, err)
	require.True(t, hit)
	assert.True(t, out.Total.Equal(in.Total))
	require.Len(t, out.Suppliers, 1)
	assert.True(t, out.Suppliers[0].Quantity.Equal(decimal.RequireFromString("10.25")))
	assert.Equal(t, "Laticínios Serra", out.Suppliers[0].SupplierName)
	assert.Equal(t, 5*time.Minute, mr.TTL("reports:v0:purchases:30"))
}

func TestRedisReportCache_InvalidateDejaHuerfanas(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, 0, "price-drift", dto.PriceDriftReportResponse{}))

	require.NoError(t, c.Invalidate(ctx))

	hit, gen, err := c.Get(ctx, "price-drift", &dto.PriceDriftReportResponse{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(1), gen)
	assert.True(t, mr.Exists("reports:v0:price-drift"), "la entrada vieja expira por TTL")
}

func TestRedisReportCache_SetConGeneracionVencidaNoEscribe(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, gen, err := c.Get(ctx, "purchases:7", &dto.PurchasesReportResponse{})
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))

	require.NoError(t, c.Set(ctx, gen, "purchases:7", dto.PurchasesReportResponse{WindowDays: 7}))

	assert.False(t, mr.Exists(entryKey(gen, "purchases:7")))
	assert.False(t, mr.Exists(entryKey(gen+1, "purchases:7")))
	hit, _, err := c.Get(ctx, "purchases:7", &dto.PurchasesReportResponse{})
	require.NoError(t, err)
	assert.False(t, hit)
}

// ── Con el caso de uso de reportes ───────────────────────────────────────────

// movementsHook dispara after una única vez, tras la primera lectura del historial.
type movementsHook struct {
	repository.MovementRepository
	after func()
}

func (m *movementsHook) List(ctx context.Context, f repository.MovementFilter) ([]entity.Movement, int, error) {
	out, total, err := m.MovementRepository.List(ctx, f)
	if m.after != nil {
		hook := m.after
		m.after = nil
		hook()
	}
	return out, total, err
}

func TestRedisReportCache_ReporteConMovimientoConcurrente(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	cost := decimal.RequireFromString("2.00")

	store := memory.NewStore()
	suppliers := memory.NewSupplierRepository(store)
	require.NoError(t, suppliers.Create(ctx, &entity.Supplier{ID: "s1", Name: "Laticínios Serra", Phone: "11 90000-0001"}))
	base := memory.NewMovementRepository(store)
	movements := &movementsHook{MovementRepository: base, after: func() {
		require.NoError(t, base.Append(ctx, &entity.Movement{
			ID: "m1", ProductID: "leite", Kind: entity.MovementReceipt,
			Quantity: decimal.NewFromInt(10), UnitCost: &cost, SupplierID: "s1", Timestamp: now,
		}))
		require.NoError(t, c.Invalidate(ctx))
	}}
	uc := analytics.NewReportsUseCase(memory.NewProductRepository(store), suppliers, movements, c, time.UTC, nil).
		WithClock(func() time.Time { return now })

	first, err := uc.Purchases(ctx, 30)
	require.NoError(t, err)
	assert.True(t, first.Total.IsZero())

	second, err := uc.Purchases(ctx, 30)
	require.NoError(t, err)
	assert.True(t, second.Total.Equal(decimal.NewFromInt(20)))
	require.Len(t, second.Suppliers, 1)
	assert.Equal(t, "s1", second.Suppliers[0].SupplierID)
}
