package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// PriceDrift compara los dos últimos costos de entrada de un producto.
type PriceDrift struct {
	ProductID     string
	Current       decimal.Decimal
	Previous      decimal.Decimal
	PercentChange decimal.Decimal // (Current - Previous) / Previous * 100
}

// ComputePriceDrift toma las entradas con costo del producto, de la más reciente a la más antigua,
// y compara las dos primeras. ok == false significa datos insuficientes: menos de dos entradas
// con costo, o costo anterior igual a cero (la variación no está definida).
func ComputePriceDrift(productID string, movements []entity.Movement) (PriceDrift, bool) {
	priced := make([]entity.Movement, 0)
	for _, m := range movements {
		if m.ProductID == productID && m.IsReceipt() && m.UnitCost != nil {
			priced = append(priced, m)
		}
	}
	if len(priced) < 2 {
		return PriceDrift{}, false
	}
	sort.SliceStable(priced, func(i, j int) bool {
		return priced[i].Timestamp.After(priced[j].Timestamp)
	})

	current, previous := *priced[0].UnitCost, *priced[1].UnitCost
	if previous.IsZero() {
		return PriceDrift{}, false
	}
	return PriceDrift{
		ProductID:     productID,
		Current:       current,
		Previous:      previous,
		PercentChange: current.Sub(previous).Div(previous).Mul(hundred),
	}, true
}

// PriceDrifts calcula la variación para cada producto con datos suficientes,
// ordenadas por |PercentChange| descendente.
func PriceDrifts(products []entity.Product, movements []entity.Movement) []PriceDrift {
	out := make([]PriceDrift, 0)
	for _, p := range products {
		if d, ok := ComputePriceDrift(p.ID, movements); ok {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PercentChange.Abs().GreaterThan(out[j].PercentChange.Abs())
	})
	return out
}
