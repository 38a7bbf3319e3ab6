package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/inventory"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
	"github.com/jhoicas/sorveteria-estoque/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos. Stock y UnitCost se manejan vía movimientos;
// solo se aceptan al crear como saldo de apertura.
type ProductUseCase struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
	cache        ReportInvalidator
	log          *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, supplierRepo repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, supplierRepo: supplierRepo, log: logger.Nop()}
}

// WithCache invalida la caché de reportes en cada alta, cambio o baja.
func (uc *ProductUseCase) WithCache(cache ReportInvalidator, log *logger.Logger) *ProductUseCase {
	uc.cache = cache
	if log != nil {
		uc.log = log.Named("products")
	}
	return uc
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if name == "" || unit == "" {
		return nil, fmt.Errorf("%w: nombre y unidad son obligatorios", domain.ErrInvalidInput)
	}
	category := entity.Category(in.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, in.Category)
	}
	if in.Stock.IsNegative() || in.UnitCost.IsNegative() || in.ReorderThreshold.IsNegative() {
		return nil, fmt.Errorf("%w: stock, costo y punto de reposición no pueden ser negativos", domain.ErrInvalidInput)
	}
	if !inventory.FitsStorage(in.Stock) || !inventory.FitsStorage(in.UnitCost) || !inventory.FitsStorage(in.ReorderThreshold) {
		return nil, fmt.Errorf("%w: stock, costo y punto de reposición admiten hasta %d decimales", domain.ErrInvalidInput, inventory.MaxScale)
	}
	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Name:             name,
		Category:         category,
		Stock:            in.Stock,
		Unit:             unit,
		UnitCost:         in.UnitCost,
		SupplierID:       strings.TrimSpace(in.SupplierID),
		ReorderThreshold: in.ReorderThreshold,
		ExpiryDate:       in.ExpiryDate,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return uc.toResponse(ctx, product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, product), nil
}

// Update actualiza un producto. No permite modificar Stock ni UnitCost.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		c := entity.Category(*in.Category)
		if !c.Valid() {
			return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, *in.Category)
		}
		product.Category = c
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.SupplierID != nil {
		product.SupplierID = strings.TrimSpace(*in.SupplierID)
	}
	if in.ReorderThreshold != nil {
		if in.ReorderThreshold.IsNegative() || !inventory.FitsStorage(*in.ReorderThreshold) {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderThreshold = *in.ReorderThreshold
	}
	if in.ExpiryDate != nil {
		product.ExpiryDate = in.ExpiryDate
	}
	if in.Notes != nil {
		product.Notes = *in.Notes
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return uc.GetByID(ctx, id)
}

// List lista los productos ordenados por nombre. category vacío = todas.
func (uc *ProductUseCase) List(ctx context.Context, category string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := uc.supplierNames(ctx)
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if category != "" && string(p.Category) != category {
			continue
		}
		items = append(items, dto.NewProductResponse(p, lookupName(names, p.SupplierID)))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: len(items), Total: len(items)},
	}, nil
}

// Delete elimina un producto. Sus movimientos permanecen en el historial.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return nil
}

func (uc *ProductUseCase) toResponse(ctx context.Context, p *entity.Product) *dto.ProductResponse {
	out := dto.NewProductResponse(*p, lookupName(uc.supplierNames(ctx), p.SupplierID))
	return &out
}

func (uc *ProductUseCase) supplierNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	suppliers, err := uc.supplierRepo.List(ctx)
	if err != nil {
		return names
	}
	for _, s := range suppliers {
		names[s.ID] = s.Name
	}
	return names
}

// lookupName resuelve una referencia débil; vacío si no hay referencia.
func lookupName(names map[string]string, id string) string {
	if id == "" {
		return ""
	}
	if n, ok := names[id]; ok {
		return n
	}
	return dto.UnknownName
}

