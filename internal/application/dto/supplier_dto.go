package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor. Phone es el destino de los pedidos.
type CreateSupplierRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Phone        string `json:"phone" validate:"required"`
	TaxID        string `json:"tax_id"`
	Address      string `json:"address"`
	PaymentTerms string `json:"payment_terms"`
	Notes        string `json:"notes"`
}

// UpdateSupplierRequest campos opcionales para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	TaxID        *string `json:"tax_id"`
	Address      *string `json:"address"`
	PaymentTerms *string `json:"payment_terms"`
	Notes        *string `json:"notes"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	TaxID        string    `json:"tax_id,omitempty"`
	Address      string    `json:"address,omitempty"`
	PaymentTerms string    `json:"payment_terms,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
