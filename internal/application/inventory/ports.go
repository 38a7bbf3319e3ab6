package inventory

import (
	"context"

	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
)

// TxRunner ejecuta una función como una unidad atómica, pasando repositorios atados a esa unidad.
// Las implementaciones serializan las escrituras del ledger: un único escritor en memoria,
// bloqueo de fila (SELECT FOR UPDATE) en PostgreSQL.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// CacheInvalidator descarta reportes derivados cuando cambia el historial.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}
