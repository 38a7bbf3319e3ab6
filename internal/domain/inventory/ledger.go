// Package inventory contiene el núcleo del libro de existencias: la aplicación de movimientos
// sobre un producto y las derivaciones (alertas, compras, variación de precios, consumo)
// calculadas a partir del historial. Todas las funciones son puras.
package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
)

// Apply aplica un movimiento al producto y devuelve la nueva versión del producto.
//
//   - Entrada: Stock = Stock + Quantity.
//   - Salida:  Stock = max(0, Stock - Quantity). Una salida mayor al stock se satura en cero,
//     no se rechaza; no convertir esto en un error, el comportamiento observable depende de ello.
//   - UnitCost solo lo sobrescribe una entrada que trae costo.
//
// El producto recibido no se modifica.
func Apply(mov entity.Movement, product entity.Product) (entity.Product, error) {
	if err := ValidateMovement(mov); err != nil {
		return product, err
	}
	if mov.ProductID != product.ID {
		return product, fmt.Errorf("%w: movimiento para %q aplicado a %q",
			domain.ErrPreconditionViolated, mov.ProductID, product.ID)
	}

	updated := product
	switch mov.Kind {
	case entity.MovementReceipt:
		updated.Stock = product.Stock.Add(mov.Quantity)
		if mov.UnitCost != nil {
			updated.UnitCost = *mov.UnitCost
		}
	case entity.MovementConsumption:
		updated.Stock = decimal.Max(decimal.Zero, product.Stock.Sub(mov.Quantity))
	}
	return updated, nil
}

// ValidateMovement revalida los campos que el ledger no puede aceptar aunque el caller ya los haya validado.
func ValidateMovement(mov entity.Movement) error {
	if !mov.Kind.Valid() {
		return fmt.Errorf("%w: tipo %q", domain.ErrInvalidMovement, mov.Kind)
	}
	if !mov.Quantity.IsPositive() {
		return fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidMovement)
	}
	if mov.UnitCost != nil && mov.UnitCost.IsNegative() {
		return fmt.Errorf("%w: el costo unitario no puede ser negativo", domain.ErrInvalidMovement)
	}
	if !FitsStorage(mov.Quantity) || (mov.UnitCost != nil && !FitsStorage(*mov.UnitCost)) {
		return fmt.Errorf("%w: cantidad y costo admiten hasta %d decimales", domain.ErrInvalidMovement, MaxScale)
	}
	return nil
}

// Clamped indica si aplicar mov sobre before saturó el stock en cero.
func Clamped(mov entity.Movement, before entity.Product) bool {
	return mov.IsConsumption() && mov.Quantity.GreaterThan(before.Stock)
}
