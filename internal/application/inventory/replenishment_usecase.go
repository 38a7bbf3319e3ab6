package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	ledger "github.com/jhoicas/sorveteria-estoque/internal/domain/inventory"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
)

// DefaultConsumptionWindow ventana (días) usada para estimar el consumo al sugerir reposición.
const DefaultConsumptionWindow = 30

// ReplenishmentUseCase genera la lista de reposición: productos en o bajo el punto de reposición,
// el pedido en borrador sembrado con 2x el punto y la cantidad sugerida según el consumo reciente.
type ReplenishmentUseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	movementRepo repository.MovementRepository
	loc          *time.Location
	now          func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición. loc define el día calendario local.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	movementRepo repository.MovementRepository,
	loc *time.Location,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		movementRepo: movementRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReplenishmentUseCase) WithClock(now func() time.Time) *ReplenishmentUseCase {
	uc.now = now
	return uc
}

// LowStock devuelve los productos con stock en o por debajo del punto de reposición.
func (uc *ReplenishmentUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names, err := uc.supplierNames(ctx)
	if err != nil {
		return nil, err
	}
	low := ledger.LowStock(products)
	out := make([]dto.ProductResponse, 0, len(low))
	for _, p := range low {
		out = append(out, dto.NewProductResponse(p, supplierName(names, p.SupplierID)))
	}
	return out, nil
}

// DraftLowStockOrder siembra un pedido en borrador con los productos de stock bajo.
func (uc *ReplenishmentUseCase) DraftLowStockOrder(ctx context.Context) (*dto.DraftOrderResponse, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	seed := ledger.SeedOrderItems(products)
	items := make([]dto.OrderItemDTO, 0, len(seed))
	for _, it := range seed {
		items = append(items, dto.OrderItemDTO{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &dto.DraftOrderResponse{Items: items}, nil
}

// GenerateReplenishmentList devuelve una sugerencia por producto con stock bajo.
// Prioridad: menos días de cobertura primero; sin consumo observado van al final,
// ordenados por mayor déficit frente al punto de reposición.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	low := ledger.LowStock(products)
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	now := uc.now()
	w, err := ledger.NewWindow(DefaultConsumptionWindow, now)
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

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		stats, err := ledger.ComputeConsumptionStats(p.ID, movements, DefaultConsumptionWindow, now, uc.loc)
		if err != nil {
			return nil, err
		}
		s := dto.ReplenishmentSuggestionDTO{
			ProductID:           p.ID,
			ProductName:         p.Name,
			Unit:                p.Unit,
			CurrentStock:        p.Stock,
			ReorderThreshold:    p.ReorderThreshold,
			AveragePerActiveDay: stats.AveragePerActiveDay,
			SuggestedOrderQty:   ledger.SuggestedReorderQuantity(stats),
			SeedOrderQty:        ledger.SeedOrderItems([]entity.Product{p})[0].Quantity,
		}
		if proj := ledger.ProjectedDaysRemaining(p, stats); !proj.Infinite {
			days := proj.Days.Round(1)
			s.DaysRemaining = &days
		}
		suggestions = append(suggestions, s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		switch {
		case a.DaysRemaining != nil && b.DaysRemaining != nil:
			if !a.DaysRemaining.Equal(*b.DaysRemaining) {
				return a.DaysRemaining.LessThan(*b.DaysRemaining)
			}
		case a.DaysRemaining != nil:
			return true
		case b.DaysRemaining != nil:
			return false
		}
		defA := a.ReorderThreshold.Sub(a.CurrentStock)
		defB := b.ReorderThreshold.Sub(b.CurrentStock)
		return defA.GreaterThan(defB)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func (uc *ReplenishmentUseCase) supplierNames(ctx context.Context) (map[string]string, error) {
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

func supplierName(names map[string]string, id string) string {
	if id == "" {
		return ""
	}
	if n, ok := names[id]; ok {
		return n
	}
	return dto.UnknownName
}
