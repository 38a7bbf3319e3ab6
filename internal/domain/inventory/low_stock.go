package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
)

// reorderSeedFactor multiplica el punto de reposición para sembrar el pedido automático.
var reorderSeedFactor = decimal.NewFromInt(2)

// IsLow indica si el stock está en o por debajo del punto de reposición.
func IsLow(p entity.Product) bool {
	return p.Stock.LessThanOrEqual(p.ReorderThreshold)
}

// LowStock filtra los productos con stock bajo, conservando el orden de entrada.
func LowStock(products []entity.Product) []entity.Product {
	low := make([]entity.Product, 0)
	for _, p := range products {
		if IsLow(p) {
			low = append(low, p)
		}
	}
	return low
}

// SeedOrderItems arma un pedido en borrador con los productos de stock bajo,
// pidiendo 2x el punto de reposición de cada uno.
func SeedOrderItems(products []entity.Product) []entity.OrderItem {
	low := LowStock(products)
	items := make([]entity.OrderItem, 0, len(low))
	for _, p := range low {
		items = append(items, entity.OrderItem{
			ProductID: p.ID,
			Quantity:  p.ReorderThreshold.Mul(reorderSeedFactor),
		})
	}
	return items
}
