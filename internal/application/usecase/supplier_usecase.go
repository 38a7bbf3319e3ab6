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
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
	"github.com/jhoicas/sorveteria-estoque/pkg/logger"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	cache ReportInvalidator
	log   *logger.Logger
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, log: logger.Nop()}
}

// WithCache invalida la caché de reportes en cada alta, cambio o baja.
func (uc *SupplierUseCase) WithCache(cache ReportInvalidator, log *logger.Logger) *SupplierUseCase {
	uc.cache = cache
	if log != nil {
		uc.log = log.Named("suppliers")
	}
	return uc
}

// Create crea un nuevo proveedor. Nombre y teléfono son obligatorios.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("%w: nombre y teléfono son obligatorios", domain.ErrInvalidInput)
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:           uuid.New().String(),
		Name:         name,
		Phone:        phone,
		TaxID:        in.TaxID,
		Address:      in.Address,
		PaymentTerms: in.PaymentTerms,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	out := dto.NewSupplierResponse(*supplier)
	return &out, nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewSupplierResponse(*supplier)
	return &out, nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		supplier.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		supplier.Phone = strings.TrimSpace(*in.Phone)
	}
	if supplier.Name == "" || supplier.Phone == "" {
		return nil, fmt.Errorf("%w: nombre y teléfono son obligatorios", domain.ErrInvalidInput)
	}
	if in.TaxID != nil {
		supplier.TaxID = *in.TaxID
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.PaymentTerms != nil {
		supplier.PaymentTerms = *in.PaymentTerms
	}
	if in.Notes != nil {
		supplier.Notes = *in.Notes
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	out := dto.NewSupplierResponse(*supplier)
	return &out, nil
}

// List lista los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSupplierResponse(s))
	}
	return out, nil
}

// Delete elimina un proveedor. Productos y movimientos que lo referencian lo mostrarán como desconocido.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateReports(ctx, uc.cache, uc.log)
	return nil
}
