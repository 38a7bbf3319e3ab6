package repository

import (
	"context"

	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
// GetByID devuelve (nil, nil) cuando el proveedor no existe.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context) ([]entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id string) error
}
