package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento de inventario.
type MovementKind string

// Tipos de movimiento.
const (
	MovementReceipt     MovementKind = "receipt"     // entrada
	MovementConsumption MovementKind = "consumption" // salida
)

// Valid indica si el tipo es conocido.
func (k MovementKind) Valid() bool {
	return k == MovementReceipt || k == MovementConsumption
}

// Movement es un registro inmutable del historial de inventario (append-only).
// ProductID y SupplierID son referencias débiles: pueden apuntar a registros ya eliminados.
type Movement struct {
	ID          string
	ProductID   string
	Kind        MovementKind
	Quantity    decimal.Decimal  // siempre > 0
	UnitCost    *decimal.Decimal // solo tiene sentido en entradas
	SupplierID  string           // vacío = sin proveedor
	Timestamp   time.Time
	OrderNumber string
	Notes       string
	CreatedBy   string
}

// IsReceipt indica si el movimiento es una entrada.
func (m Movement) IsReceipt() bool { return m.Kind == MovementReceipt }

// IsConsumption indica si el movimiento es una salida.
func (m Movement) IsConsumption() bool { return m.Kind == MovementConsumption }
