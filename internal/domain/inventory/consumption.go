package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
)

// reorderHorizonDays horizonte fijo de la sugerencia de reposición.
var reorderHorizonDays = decimal.NewFromInt(30)

// ConsumptionStats resumen de salidas de un producto en una ventana.
type ConsumptionStats struct {
	ProductID           string
	TotalConsumed       decimal.Decimal
	ActiveDays          int             // fechas locales distintas con al menos una salida
	AveragePerActiveDay decimal.Decimal // TotalConsumed / ActiveDays, 0 sin actividad
}

// ComputeConsumptionStats suma las salidas del producto dentro de [now - windowDays, now].
// Los días activos se cuentan por fecha de calendario en loc, no por instante.
func ComputeConsumptionStats(productID string, movements []entity.Movement, windowDays int, now time.Time, loc *time.Location) (ConsumptionStats, error) {
	w, err := NewWindow(windowDays, now)
	if err != nil {
		return ConsumptionStats{}, err
	}
	if loc == nil {
		loc = time.Local
	}

	stats := ConsumptionStats{ProductID: productID}
	days := make(map[string]struct{})
	for _, m := range movements {
		if m.ProductID != productID || !m.IsConsumption() || !w.Contains(m.Timestamp) {
			continue
		}
		stats.TotalConsumed = stats.TotalConsumed.Add(m.Quantity)
		days[m.Timestamp.In(loc).Format(time.DateOnly)] = struct{}{}
	}
	stats.ActiveDays = len(days)
	if stats.ActiveDays > 0 {
		stats.AveragePerActiveDay = stats.TotalConsumed.Div(decimal.NewFromInt(int64(stats.ActiveDays)))
	}
	return stats, nil
}

// Projection días estimados hasta agotar el stock.
type Projection struct {
	Days     decimal.Decimal
	Infinite bool // sin consumo observado no hay agotamiento proyectado
}

// ProjectedDaysRemaining devuelve Stock / AveragePerActiveDay, o Infinite si el promedio es cero.
func ProjectedDaysRemaining(p entity.Product, stats ConsumptionStats) Projection {
	if !stats.AveragePerActiveDay.IsPositive() {
		return Projection{Infinite: true}
	}
	return Projection{Days: p.Stock.Div(stats.AveragePerActiveDay)}
}

// SuggestedReorderQuantity devuelve ceil(AveragePerActiveDay * 30).
func SuggestedReorderQuantity(stats ConsumptionStats) decimal.Decimal {
	return stats.AveragePerActiveDay.Mul(reorderHorizonDays).Ceil()
}
