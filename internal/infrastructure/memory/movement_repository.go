package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo historial append-only en memoria.
type MovementRepo struct {
	s *Store
}

// NewMovementRepository construye el repositorio sobre el almacén.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

// Append agrega un movimiento al historial.
func (r *MovementRepo) Append(_ context.Context, movement *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.appendMovementLocked(*movement)
}

// List filtra, ordena del más reciente al más antiguo y pagina.
func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]entity.Movement, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// Recorrido inverso: con la misma fecha, el último registrado va primero.
	filtered := make([]entity.Movement, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if m := r.s.movements[i]; matchesFilter(m, f) {
			filtered = append(filtered, cloneMovement(m))
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	total := len(filtered)
	start := clamp(f.Offset, 0, total)
	end := total
	if f.Limit > 0 {
		end = clamp(start+f.Limit, start, total)
	}
	return filtered[start:end], total, nil
}

func (s *Store) appendMovementLocked(m entity.Movement) error {
	for _, existing := range s.movements {
		if existing.ID == m.ID {
			return domain.ErrDuplicate
		}
	}
	s.movements = append(s.movements, cloneMovement(m))
	return nil
}

func matchesFilter(m entity.Movement, f repository.MovementFilter) bool {
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.Kind != "" && m.Kind != f.Kind {
		return false
	}
	if f.Since != nil && m.Timestamp.Before(*f.Since) {
		return false
	}
	if f.Until != nil && m.Timestamp.After(*f.Until) {
		return false
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
