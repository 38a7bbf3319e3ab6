package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock y UnitCost son el saldo de apertura.
type CreateProductRequest struct {
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	Category         string          `json:"category" validate:"required,oneof=ice-cream syrup topping packaging raw-material"`
	Stock            decimal.Decimal `json:"stock"`
	Unit             string          `json:"unit" validate:"required"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	SupplierID       string          `json:"supplier_id"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
	Notes            string          `json:"notes"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock ni UnitCost: cambian solo por movimientos).
type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category         *string          `json:"category"`
	Unit             *string          `json:"unit"`
	SupplierID       *string          `json:"supplier_id"`
	ReorderThreshold *decimal.Decimal `json:"reorder_threshold"`
	ExpiryDate       *time.Time       `json:"expiry_date"`
	Notes            *string          `json:"notes"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Stock            decimal.Decimal `json:"stock"`
	Unit             string          `json:"unit"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	SupplierID       string          `json:"supplier_id,omitempty"`
	SupplierName     string          `json:"supplier_name,omitempty"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	LowStock         bool            `json:"low_stock"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
