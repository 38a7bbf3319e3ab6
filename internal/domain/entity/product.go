package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category clasifica los productos de la heladería.
type Category string

// Categorías válidas de producto.
const (
	CategoryIceCream    Category = "ice-cream"
	CategorySyrup       Category = "syrup"
	CategoryTopping     Category = "topping"
	CategoryPackaging   Category = "packaging"
	CategoryRawMaterial Category = "raw-material"
)

// Valid indica si la categoría pertenece al catálogo.
func (c Category) Valid() bool {
	switch c {
	case CategoryIceCream, CategorySyrup, CategoryTopping, CategoryPackaging, CategoryRawMaterial:
		return true
	}
	return false
}

// Product representa un ítem del inventario.
// Stock y UnitCost solo cambian vía movimientos (ver inventory.Apply); Stock nunca es negativo.
type Product struct {
	ID               string
	Name             string
	Category         Category
	Stock            decimal.Decimal
	Unit             string          // unidad de medida libre: kg, L, un, caja...
	UnitCost         decimal.Decimal // último costo informado en una entrada
	SupplierID       string          // proveedor principal (referencia débil)
	ReorderThreshold decimal.Decimal // punto de reposición
	ExpiryDate       *time.Time
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StockValue devuelve Stock * UnitCost.
func (p Product) StockValue() decimal.Decimal {
	return p.Stock.Mul(p.UnitCost)
}
