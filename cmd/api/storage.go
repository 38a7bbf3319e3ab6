package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/sorveteria-estoque/internal/application/inventory"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
	"github.com/jhoicas/sorveteria-estoque/internal/infrastructure/memory"
	"github.com/jhoicas/sorveteria-estoque/internal/infrastructure/postgres"
	"github.com/jhoicas/sorveteria-estoque/pkg/config"
)

// storage repositorios del almacén elegido por STORAGE_DRIVER.
type storage struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	movements repository.MovementRepository
	users     repository.UserRepository
	tx        inventory.TxRunner
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &storage{
			products:  postgres.NewProductRepository(pool),
			suppliers: postgres.NewSupplierRepository(pool),
			movements: postgres.NewMovementRepository(pool),
			users:     postgres.NewUserRepository(pool),
			tx:        postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil
	default:
		store := memory.NewStore()
		return &storage{
			products:  memory.NewProductRepository(store),
			suppliers: memory.NewSupplierRepository(store),
			movements: memory.NewMovementRepository(store),
			users:     memory.NewUserRepository(store),
			tx:        memory.NewTxRunner(store),
			close:     func() {},
		}, nil
	}
}
