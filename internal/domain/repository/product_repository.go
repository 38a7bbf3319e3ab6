package repository

import (
	"context"

	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueándolo para escritura dentro de la transacción en curso.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// SaveLedgerState persiste solo Stock y UnitCost (usado por el motor de inventario).
	SaveLedgerState(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
