package entity

import "github.com/shopspring/decimal"

// OrderItem es un ítem de un pedido en borrador (planificación, nunca se persiste).
type OrderItem struct {
	ProductID string
	Quantity  decimal.Decimal
}

// OrderLine es un OrderItem con el producto ya resuelto.
type OrderLine struct {
	Product  Product
	Quantity decimal.Decimal
}

// EstimatedCost devuelve Quantity * UnitCost del producto.
func (l OrderLine) EstimatedCost() decimal.Decimal {
	return l.Quantity.Mul(l.Product.UnitCost)
}
