package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/inventory"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
	"github.com/jhoicas/sorveteria-estoque/pkg/logger"
	"github.com/shopspring/decimal"
)

// ReportsUseCase recalcula los reportes a partir del historial completo de movimientos.
// Si hay caché configurada, los resultados se guardan hasta el próximo movimiento.
type ReportsUseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	movementRepo repository.MovementRepository
	cache        ReportCache
	log          *logger.Logger
	loc          *time.Location
	now          func() time.Time
}

// NewReportsUseCase construye el caso de uso. cache puede ser nil.
func NewReportsUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	movementRepo repository.MovementRepository,
	cache ReportCache,
	loc *time.Location,
	log *logger.Logger,
) *ReportsUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportsUseCase{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		movementRepo: movementRepo,
		cache:        cache,
		log:          log.Named("reports"),
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportsUseCase) WithClock(now func() time.Time) *ReportsUseCase {
	uc.now = now
	return uc
}

// ── Compras por proveedor ────────────────────────────────────────────────────

// Purchases agrupa las entradas con proveedor de los últimos windowDays días,
// ordenadas por valor descendente.
func (uc *ReportsUseCase) Purchases(ctx context.Context, windowDays int) (*dto.PurchasesReportResponse, error) {
	key := fmt.Sprintf("purchases:%d", windowDays)
	var out dto.PurchasesReportResponse
	hit, gen := uc.fromCache(ctx, key, &out)
	if hit {
		return &out, nil
	}

	now := uc.now()
	w, err := inventory.NewWindow(windowDays, now)
	if err != nil {
		return nil, err
	}
	movements, _, err := uc.movementRepo.List(ctx, repository.MovementFilter{
		Kind:  entity.MovementReceipt,
		Since: &w.Start,
		Until: &w.End,
	})
	if err != nil {
		return nil, err
	}
	purchases, err := inventory.PurchasesBySupplier(movements, windowDays, now)
	if err != nil {
		return nil, err
	}
	names, err := uc.supplierNames(ctx)
	if err != nil {
		return nil, err
	}

	out = dto.PurchasesReportResponse{
		WindowDays: windowDays,
		From:       w.Start,
		To:         w.End,
		Suppliers:  make([]dto.SupplierPurchasesDTO, 0, len(purchases)),
	}
	for _, e := range inventory.SortPurchases(purchases) {
		out.Total = out.Total.Add(e.Value)
		out.Suppliers = append(out.Suppliers, dto.SupplierPurchasesDTO{
			SupplierID:   e.SupplierID,
			SupplierName: resolveName(names, e.SupplierID),
			Quantity:     e.Quantity,
			Value:        e.Value,
			Count:        e.Count,
		})
	}
	uc.toCache(ctx, gen, key, out)
	return &out, nil
}

// ── Variación de precios ─────────────────────────────────────────────────────

// PriceDrift compara las dos últimas entradas con costo de cada producto.
// Los productos con menos de dos entradas con costo no aparecen.
func (uc *ReportsUseCase) PriceDrift(ctx context.Context) (*dto.PriceDriftReportResponse, error) {
	const key = "price-drift"
	var out dto.PriceDriftReportResponse
	hit, gen := uc.fromCache(ctx, key, &out)
	if hit {
		return &out, nil
	}

	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	movements, _, err := uc.movementRepo.List(ctx, repository.MovementFilter{Kind: entity.MovementReceipt})
	if err != nil {
		return nil, err
	}
	lookup := inventory.LookupFromSlice(products)

	drifts := inventory.PriceDrifts(products, movements)
	out.Items = make([]dto.PriceDriftDTO, 0, len(drifts))
	for _, d := range drifts {
		name := dto.UnknownName
		if p, ok := lookup(d.ProductID); ok {
			name = p.Name
		}
		out.Items = append(out.Items, dto.PriceDriftDTO{
			ProductID:     d.ProductID,
			ProductName:   name,
			Current:       d.Current,
			Previous:      d.Previous,
			PercentChange: d.PercentChange.Round(1),
		})
	}
	uc.toCache(ctx, gen, key, out)
	return &out, nil
}

// ── Consumo ──────────────────────────────────────────────────────────────────

// Consumption calcula el consumo por producto en la ventana, con días restantes y cantidad sugerida.
// Solo incluye productos con consumo; ordena por promedio diario descendente.
func (uc *ReportsUseCase) Consumption(ctx context.Context, windowDays int) (*dto.ConsumptionReportResponse, error) {
	key := fmt.Sprintf("consumption:%d", windowDays)
	var out dto.ConsumptionReportResponse
	hit, gen := uc.fromCache(ctx, key, &out)
	if hit {
		return &out, nil
	}

	now := uc.now()
	w, err := inventory.NewWindow(windowDays, now)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	movements, _, err := uc.movementRepo.List(ctx, repository.MovementFilter{
		Kind:  entity.MovementConsumption,
		Since: &w.Start,
		Until: &w.End,
	})
	if err != nil {
		return nil, err
	}

	out = dto.ConsumptionReportResponse{WindowDays: windowDays, Items: make([]dto.ConsumptionDTO, 0)}
	for _, p := range products {
		stats, err := inventory.ComputeConsumptionStats(p.ID, movements, windowDays, now, uc.loc)
		if err != nil {
			return nil, err
		}
		if !stats.TotalConsumed.IsPositive() {
			continue
		}
		item := dto.ConsumptionDTO{
			ProductID:           p.ID,
			ProductName:         p.Name,
			Unit:                p.Unit,
			Stock:               p.Stock,
			TotalConsumed:       stats.TotalConsumed,
			ActiveDays:          stats.ActiveDays,
			AveragePerActiveDay: stats.AveragePerActiveDay.Round(2),
			SuggestedOrderQty:   inventory.SuggestedReorderQuantity(stats),
		}
		if proj := inventory.ProjectedDaysRemaining(p, stats); !proj.Infinite {
			days := proj.Days.Ceil()
			item.DaysRemaining = &days
		}
		out.Items = append(out.Items, item)
	}
	sort.SliceStable(out.Items, func(i, j int) bool {
		return out.Items[i].AveragePerActiveDay.GreaterThan(out.Items[j].AveragePerActiveDay)
	})
	uc.toCache(ctx, gen, key, out)
	return &out, nil
}

// ── Panel principal ──────────────────────────────────────────────────────────

const dashboardRecentMovements = 5 // movimientos en el widget del panel

// Dashboard resume catálogo, valor del stock, alertas y los últimos movimientos.
// Las tres lecturas se hacen en paralelo.
func (uc *ReportsUseCase) Dashboard(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	type productsResult struct {
		list []entity.Product
		err  error
	}
	type suppliersResult struct {
		list []entity.Supplier
		err  error
	}
	type movementsResult struct {
		list []entity.Movement
		err  error
	}

	productsCh := make(chan productsResult, 1)
	suppliersCh := make(chan suppliersResult, 1)
	movementsCh := make(chan movementsResult, 1)

	go func() {
		list, err := uc.productRepo.List(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.supplierRepo.List(ctx)
		suppliersCh <- suppliersResult{list, err}
	}()
	go func() {
		list, _, err := uc.movementRepo.List(ctx, repository.MovementFilter{Limit: dashboardRecentMovements})
		movementsCh <- movementsResult{list, err}
	}()

	products := <-productsCh
	suppliers := <-suppliersCh
	movements := <-movementsCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if suppliers.err != nil {
		return nil, fmt.Errorf("dashboard: proveedores: %w", suppliers.err)
	}
	if movements.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos: %w", movements.err)
	}

	names := make(map[string]string, len(suppliers.list))
	byID := make(map[string]entity.Supplier, len(suppliers.list))
	for _, s := range suppliers.list {
		names[s.ID] = s.Name
		byID[s.ID] = s
	}

	stockValue := decimal.Zero
	for _, p := range products.list {
		stockValue = stockValue.Add(p.StockValue())
	}
	low := inventory.LowStock(products.list)
	lowDTO := make([]dto.ProductResponse, 0, len(low))
	for _, p := range low {
		lowDTO = append(lowDTO, dto.NewProductResponse(p, resolveName(names, p.SupplierID)))
	}

	productLookup := inventory.LookupFromSlice(products.list)
	supplierLookup := func(id string) (entity.Supplier, bool) {
		s, ok := byID[id]
		return s, ok
	}
	recent := make([]dto.MovementResponse, 0, len(movements.list))
	for _, m := range movements.list {
		recent = append(recent, dto.NewMovementResponse(m, productLookup, supplierLookup))
	}

	return &dto.DashboardSummaryResponse{
		TotalProducts:   len(products.list),
		TotalSuppliers:  len(suppliers.list),
		StockValue:      stockValue.Round(2),
		LowStockCount:   len(low),
		LowStock:        lowDTO,
		RecentMovements: recent,
		GeneratedAt:     uc.now(),
	}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// fromCache devuelve la generación leída; el reporte recalculado se guarda con ella.
// Una lectura fallida devuelve gen -1 para que toCache no escriba.
func (uc *ReportsUseCase) fromCache(ctx context.Context, key string, dst any) (bool, int64) {
	if uc.cache == nil {
		return false, -1
	}
	hit, gen, err := uc.cache.Get(ctx, key, dst)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida, se recalcula")
		return false, -1
	}
	return hit, gen
}

func (uc *ReportsUseCase) toCache(ctx context.Context, gen int64, key string, value any) {
	if uc.cache == nil || gen < 0 {
		return
	}
	if err := uc.cache.Set(ctx, gen, key, value); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
	}
}

func (uc *ReportsUseCase) supplierNames(ctx context.Context) (map[string]string, error) {
	suppliers, err := uc.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(suppliers))
	for _, s := range suppliers {
		names[s.ID] = s.Name
	}
	return names, nil
}

func resolveName(names map[string]string, id string) string {
	if id == "" {
		return ""
	}
	if n, ok := names[id]; ok {
		return n
	}
	return dto.UnknownName
}
