package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
)

// SupplierPurchases acumulado de compras (entradas) de un proveedor en una ventana.
type SupplierPurchases struct {
	Quantity decimal.Decimal // suma de cantidades
	Value    decimal.Decimal // suma de UnitCost * Quantity (costo ausente = 0)
	Count    int             // número de entradas
}

// PurchasesBySupplier agrupa por proveedor las entradas con proveedor informado cuyo
// Timestamp cae en [now - windowDays, now]. Las salidas nunca se cuentan.
// El mapa no tiene orden; ordenar es cosa de presentación (ver SortPurchases).
func PurchasesBySupplier(movements []entity.Movement, windowDays int, now time.Time) (map[string]SupplierPurchases, error) {
	w, err := NewWindow(windowDays, now)
	if err != nil {
		return nil, err
	}
	out := make(map[string]SupplierPurchases)
	for _, m := range movements {
		if !m.IsReceipt() || m.SupplierID == "" || !w.Contains(m.Timestamp) {
			continue
		}
		acc := out[m.SupplierID]
		acc.Quantity = acc.Quantity.Add(m.Quantity)
		if m.UnitCost != nil {
			acc.Value = acc.Value.Add(m.UnitCost.Mul(m.Quantity))
		}
		acc.Count++
		out[m.SupplierID] = acc
	}
	return out, nil
}

// SupplierPurchasesEntry par proveedor/acumulado para listados ordenados.
type SupplierPurchasesEntry struct {
	SupplierID string
	SupplierPurchases
}

// SortPurchases devuelve las entradas ordenadas por Value descendente (empate: SupplierID).
func SortPurchases(purchases map[string]SupplierPurchases) []SupplierPurchasesEntry {
	entries := make([]SupplierPurchasesEntry, 0, len(purchases))
	for id, p := range purchases {
		entries = append(entries, SupplierPurchasesEntry{SupplierID: id, SupplierPurchases: p})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Value.Equal(b.Value) {
			return a.Value.GreaterThan(b.Value)
		}
		return a.SupplierID < b.SupplierID
	})
	return entries
}

// ProductLookup resuelve una referencia débil a producto.
type ProductLookup func(id string) (entity.Product, bool)

// LookupFromSlice construye un ProductLookup indexando products por ID.
func LookupFromSlice(products []entity.Product) ProductLookup {
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return func(id string) (entity.Product, bool) {
		p, ok := byID[id]
		return p, ok
	}
}

// GroupOrderItemsBySupplier agrupa un pedido en borrador por el proveedor principal de cada producto,
// conservando el orden de los ítems dentro de cada grupo. Los ítems cuyo producto no existe o no
// tiene proveedor se descartan (no hay grupo "desconocido").
func GroupOrderItemsBySupplier(items []entity.OrderItem, lookup ProductLookup) map[string][]entity.OrderLine {
	groups := make(map[string][]entity.OrderLine)
	for _, item := range items {
		p, ok := lookup(item.ProductID)
		if !ok || p.SupplierID == "" {
			continue
		}
		groups[p.SupplierID] = append(groups[p.SupplierID], entity.OrderLine{Product: p, Quantity: item.Quantity})
	}
	return groups
}
