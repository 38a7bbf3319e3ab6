package dto

import (
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/inventory"
)

// UnknownName se muestra cuando una referencia débil no resuelve (registro eliminado).
const UnknownName = "Desconhecido"

// NewProductResponse convierte un producto; supplierName puede ser vacío.
func NewProductResponse(p entity.Product, supplierName string) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Category:         string(p.Category),
		Stock:            p.Stock,
		Unit:             p.Unit,
		UnitCost:         p.UnitCost,
		SupplierID:       p.SupplierID,
		SupplierName:     supplierName,
		ReorderThreshold: p.ReorderThreshold,
		ExpiryDate:       p.ExpiryDate,
		Notes:            p.Notes,
		LowStock:         inventory.IsLow(p),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// NewSupplierResponse convierte un proveedor.
func NewSupplierResponse(s entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		Phone:        s.Phone,
		TaxID:        s.TaxID,
		Address:      s.Address,
		PaymentTerms: s.PaymentTerms,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// NewMovementResponse convierte un movimiento resolviendo producto y proveedor con los lookups dados.
// Un producto que ya no existe se muestra como UnknownName.
func NewMovementResponse(
	m entity.Movement,
	product func(id string) (entity.Product, bool),
	supplier func(id string) (entity.Supplier, bool),
) MovementResponse {
	out := MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: UnknownName,
		Type:        string(m.Kind),
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		SupplierID:  m.SupplierID,
		OrderNumber: m.OrderNumber,
		Notes:       m.Notes,
		Timestamp:   m.Timestamp,
	}
	if p, ok := product(m.ProductID); ok {
		out.ProductName = p.Name
		out.Unit = p.Unit
	}
	if m.SupplierID != "" {
		out.SupplierName = UnknownName
		if s, ok := supplier(m.SupplierID); ok {
			out.SupplierName = s.Name
		}
	}
	return out
}

// NewUserResponse convierte un usuario (sin hash).
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
