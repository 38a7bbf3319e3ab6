package memory

import (
	"context"

	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repositorio sobre el almacén.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// Create agrega un producto. ID duplicado devuelve ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.writer.Lock()
	defer r.s.writer.Unlock()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[product.ID] = cloneProduct(*product)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := cloneProduct(p)
	return &cp, nil
}

// GetForUpdate equivale a GetByID: fuera de TxRunner no hay bloqueo de fila.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// List devuelve todos los productos ordenados por nombre.
func (r *ProductRepo) List(_ context.Context) ([]entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		list = append(list, cloneProduct(p))
	}
	sortProducts(list)
	return list, nil
}

// Update reemplaza los datos de catálogo. Stock y UnitCost se conservan: solo los cambia el ledger.
// Las escrituras toman el lock de escritor para no pisar un TxRunner en curso.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.writer.Lock()
	defer r.s.writer.Unlock()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := cloneProduct(*product)
	updated.Stock = current.Stock
	updated.UnitCost = current.UnitCost
	updated.CreatedAt = current.CreatedAt
	r.s.products[product.ID] = updated
	return nil
}

// SaveLedgerState persiste Stock y UnitCost.
func (r *ProductRepo) SaveLedgerState(_ context.Context, product *entity.Product) error {
	r.s.writer.Lock()
	defer r.s.writer.Unlock()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	current.Stock = product.Stock
	current.UnitCost = product.UnitCost
	current.UpdatedAt = product.UpdatedAt
	r.s.products[product.ID] = current
	return nil
}

// Delete elimina el producto. Los movimientos que lo referencian se conservan.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.writer.Lock()
	defer r.s.writer.Unlock()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}
