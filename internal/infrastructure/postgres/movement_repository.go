package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo historial append-only sobre PostgreSQL (usable con pool o tx).
// La tabla no tiene UPDATE ni DELETE en este adaptador.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste un movimiento.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, kind, quantity, unit_cost, supplier_id, occurred_at, order_number, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, NULLIF($10, ''))`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, string(m.Kind), m.Quantity, m.UnitCost, m.SupplierID,
		m.Timestamp, m.OrderNumber, m.Notes, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List filtra el historial, del más reciente al más antiguo, y devuelve el total sin paginar.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]entity.Movement, int, error) {
	where, args := buildMovementWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}

	query := `
		SELECT id, product_id, kind, quantity, unit_cost, COALESCE(supplier_id, ''), occurred_at,
			order_number, notes, COALESCE(created_by, '')
		FROM stock_movements` + where + ` ORDER BY occurred_at DESC, id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Movement, 0)
	for rows.Next() {
		var m entity.Movement
		var kind string
		if err := rows.Scan(
			&m.ID, &m.ProductID, &kind, &m.Quantity, &m.UnitCost, &m.SupplierID, &m.Timestamp,
			&m.OrderNumber, &m.Notes, &m.CreatedBy,
		); err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// buildMovementWhere arma la cláusula WHERE con placeholders posicionales.
func buildMovementWhere(f repository.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.Kind != "" {
		add("kind = $%d", string(f.Kind))
	}
	if f.Since != nil {
		add("occurred_at >= $%d", *f.Since)
	}
	if f.Until != nil {
		add("occurred_at <= $%d", *f.Until)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
