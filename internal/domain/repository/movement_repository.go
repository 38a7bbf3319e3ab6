package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
)

// MovementFilter filtros opcionales del historial. Since/Until son inclusivos.
type MovementFilter struct {
	ProductID string
	Kind      entity.MovementKind
	Since     *time.Time
	Until     *time.Time
	Limit     int // 0 = sin límite
	Offset    int
}

// MovementRepository puerto del historial de movimientos. Es append-only:
// no existe Update ni Delete.
type MovementRepository interface {
	Append(ctx context.Context, movement *entity.Movement) error
	// List devuelve los movimientos filtrados, del más reciente al más antiguo, y el total sin paginar.
	List(ctx context.Context, filter MovementFilter) ([]entity.Movement, int, error)
}
