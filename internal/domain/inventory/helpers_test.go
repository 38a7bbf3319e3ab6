package inventory_test

import (
	"time"

	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	saoPaulo = time.FixedZone("BRT", -3*60*60)
	testNow  = time.Date(2026, 3, 15, 18, 0, 0, 0, saoPaulo)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func daysAgo(n int) time.Time { return testNow.AddDate(0, 0, -n) }

func product(id, stock, threshold, cost string) entity.Product {
	return entity.Product{
		ID:               id,
		Name:             "Produto " + id,
		Category:         entity.CategoryIceCream,
		Stock:            dec(stock),
		Unit:             "kg",
		UnitCost:         dec(cost),
		SupplierID:       "sup-1",
		ReorderThreshold: dec(threshold),
	}
}

func receipt(productID, qty string, cost *decimal.Decimal, supplierID string, at time.Time) entity.Movement {
	return entity.Movement{
		ID:         productID + "-r-" + at.Format(time.RFC3339Nano),
		ProductID:  productID,
		Kind:       entity.MovementReceipt,
		Quantity:   dec(qty),
		UnitCost:   cost,
		SupplierID: supplierID,
		Timestamp:  at,
	}
}

func consumption(productID, qty string, at time.Time) entity.Movement {
	return entity.Movement{
		ID:        productID + "-c-" + at.Format(time.RFC3339Nano),
		ProductID: productID,
		Kind:      entity.MovementConsumption,
		Quantity:  dec(qty),
		Timestamp: at,
	}
}
