package memory

import (
	"context"

	"github.com/jhoicas/sorveteria-estoque/internal/application/inventory"
	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks como una unidad atómica sobre el Store.
// Un solo callback corre a la vez (único escritor); las escrituras quedan en un área de staging
// y se confirman juntas solo si el callback termina sin error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repositorios de staging y hace commit o descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.writer.Lock()
	defer r.s.writer.Unlock()

	tx := &txState{
		s:        r.s,
		products: make(map[string]*entity.Product),
	}
	if err := fn(&txProductRepo{tx: tx}, &txMovementRepo{tx: tx}); err != nil {
		return err
	}
	return tx.commit()
}

// txState escrituras pendientes; un puntero nil en products marca un borrado.
type txState struct {
	s         *Store
	products  map[string]*entity.Product
	movements []entity.Movement
}

func (tx *txState) commit() error {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	for id, p := range tx.products {
		if p == nil {
			delete(tx.s.products, id)
			continue
		}
		tx.s.products[id] = cloneProduct(*p)
	}
	for _, m := range tx.movements {
		if err := tx.s.appendMovementLocked(m); err != nil {
			return err
		}
	}
	return nil
}

func (tx *txState) lookup(id string) (entity.Product, bool) {
	if p, staged := tx.products[id]; staged {
		if p == nil {
			return entity.Product{}, false
		}
		return *p, true
	}
	tx.s.mu.RLock()
	defer tx.s.mu.RUnlock()
	p, ok := tx.s.products[id]
	return p, ok
}

type txProductRepo struct {
	tx *txState
}

func (r *txProductRepo) Create(_ context.Context, product *entity.Product) error {
	if _, ok := r.tx.lookup(product.ID); ok {
		return domain.ErrDuplicate
	}
	cp := cloneProduct(*product)
	r.tx.products[product.ID] = &cp
	return nil
}

func (r *txProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.tx.lookup(id)
	if !ok {
		return nil, nil
	}
	cp := cloneProduct(p)
	return &cp, nil
}

// GetForUpdate no necesita bloqueo adicional: el TxRunner ya es el único escritor.
func (r *txProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *txProductRepo) List(_ context.Context) ([]entity.Product, error) {
	r.tx.s.mu.RLock()
	ids := make([]string, 0, len(r.tx.s.products))
	for id := range r.tx.s.products {
		ids = append(ids, id)
	}
	r.tx.s.mu.RUnlock()
	for id := range r.tx.products {
		ids = append(ids, id)
	}

	seen := make(map[string]bool, len(ids))
	list := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.tx.lookup(id); ok {
			list = append(list, cloneProduct(p))
		}
	}
	sortProducts(list)
	return list, nil
}

func (r *txProductRepo) Update(_ context.Context, product *entity.Product) error {
	current, ok := r.tx.lookup(product.ID)
	if !ok {
		return domain.ErrNotFound
	}
	updated := cloneProduct(*product)
	updated.Stock = current.Stock
	updated.UnitCost = current.UnitCost
	updated.CreatedAt = current.CreatedAt
	r.tx.products[product.ID] = &updated
	return nil
}

func (r *txProductRepo) SaveLedgerState(_ context.Context, product *entity.Product) error {
	current, ok := r.tx.lookup(product.ID)
	if !ok {
		return domain.ErrNotFound
	}
	current.Stock = product.Stock
	current.UnitCost = product.UnitCost
	current.UpdatedAt = product.UpdatedAt
	r.tx.products[product.ID] = &current
	return nil
}

func (r *txProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tx.lookup(id); !ok {
		return domain.ErrNotFound
	}
	r.tx.products[id] = nil
	return nil
}

type txMovementRepo struct {
	tx *txState
}

func (r *txMovementRepo) Append(_ context.Context, movement *entity.Movement) error {
	for _, m := range r.tx.movements {
		if m.ID == movement.ID {
			return domain.ErrDuplicate
		}
	}
	r.tx.movements = append(r.tx.movements, cloneMovement(*movement))
	return nil
}

// List solo ve el historial confirmado; los movimientos en staging aparecen tras el commit.
func (r *txMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]entity.Movement, int, error) {
	return NewMovementRepository(r.tx.s).List(ctx, f)
}
