package entity

import "time"

// Supplier representa un proveedor. Phone es obligatorio: es el destino de los pedidos por mensajería.
type Supplier struct {
	ID           string
	Name         string
	Phone        string
	TaxID        string // CNPJ u otro identificador fiscal
	Address      string
	PaymentTerms string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
