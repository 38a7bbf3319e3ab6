package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	ledger "github.com/jhoicas/sorveteria-estoque/internal/domain/inventory"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
	"github.com/jhoicas/sorveteria-estoque/pkg/logger"
	"github.com/shopspring/decimal"
)

// RegisterMovementUseCase registra entradas y salidas de forma transaccional:
// bloquea el producto, aplica el movimiento con el ledger, guarda el nuevo estado
// y agrega el movimiento al historial en la misma unidad (Commit/Rollback).
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	movementRepo repository.MovementRepository
	cache        CacheInvalidator
	log          *logger.Logger
	now          func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. cache y log pueden ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	movementRepo repository.MovementRepository,
	cache CacheInvalidator,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		movementRepo: movementRepo,
		cache:        cache,
		log:          log.Named("inventory"),
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *RegisterMovementUseCase) WithClock(now func() time.Time) *RegisterMovementUseCase {
	uc.now = now
	return uc
}

// MovementInputDTO entrada para registrar un movimiento.
// UnitCost es opcional; en una entrada, si viene, reemplaza el costo unitario del producto.
type MovementInputDTO struct {
	UserID      string
	ProductID   string
	Type        string
	Quantity    decimal.Decimal
	UnitCost    *decimal.Decimal
	SupplierID  string
	OrderNumber string
	Notes       string
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{
		UserID:      userID,
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		SupplierID:  in.SupplierID,
		OrderNumber: in.OrderNumber,
		Notes:       in.Notes,
	})
}

// RegisterMovement valida la entrada, bloquea el producto (GetForUpdate), aplica el movimiento,
// persiste el producto y agrega el movimiento. Identidad y fecha las asigna el servidor.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*dto.RegisterMovementResponse, error) {
	mov := entity.Movement{
		ID:          uuid.New().String(),
		ProductID:   strings.TrimSpace(input.ProductID),
		Kind:        entity.MovementKind(input.Type),
		Quantity:    input.Quantity,
		UnitCost:    input.UnitCost,
		SupplierID:  strings.TrimSpace(input.SupplierID),
		Timestamp:   uc.now(),
		OrderNumber: strings.TrimSpace(input.OrderNumber),
		Notes:       input.Notes,
		CreatedBy:   input.UserID,
	}
	if mov.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ledger.ValidateMovement(mov); err != nil {
		return nil, err
	}
	// En una salida el costo y el proveedor no aplican.
	if mov.IsConsumption() {
		mov.UnitCost = nil
		mov.SupplierID = ""
	}

	var (
		updated entity.Product
		clamped bool
	)
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		updated, err = ledger.Apply(mov, *product)
		if err != nil {
			return err
		}
		clamped = ledger.Clamped(mov, *product)
		updated.UpdatedAt = mov.Timestamp
		if err := productRepo.SaveLedgerState(ctx, &updated); err != nil {
			return err
		}
		return movRepo.Append(ctx, &mov)
	})
	if err != nil {
		return nil, err
	}

	ev := uc.log.Info()
	if clamped {
		ev = uc.log.Warn().Bool("clamped", true)
	}
	ev.Str("movement_id", mov.ID).
		Str("product_id", mov.ProductID).
		Str("type", string(mov.Kind)).
		Str("quantity", mov.Quantity.String()).
		Str("stock", updated.Stock.String()).
		Msg("movimiento registrado")

	uc.invalidate(ctx)

	suppliers := uc.supplierLookup(ctx)
	supplierName := ""
	if updated.SupplierID != "" {
		supplierName = dto.UnknownName
		if s, ok := suppliers(updated.SupplierID); ok {
			supplierName = s.Name
		}
	}
	return &dto.RegisterMovementResponse{
		Movement: dto.NewMovementResponse(mov, ledger.LookupFromSlice([]entity.Product{updated}), suppliers),
		Product:  dto.NewProductResponse(updated, supplierName),
		Clamped:  clamped,
	}, nil
}

// History lista movimientos del más reciente al más antiguo resolviendo nombres.
func (uc *RegisterMovementUseCase) History(ctx context.Context, q dto.MovementHistoryQuery) (*dto.MovementListResponse, error) {
	q.DefaultPage()
	if q.Type != "" && !entity.MovementKind(q.Type).Valid() {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, q.Type)
	}
	movements, total, err := uc.movementRepo.List(ctx, repository.MovementFilter{
		ProductID: q.ProductID,
		Kind:      entity.MovementKind(q.Type),
		Since:     q.Since,
		Until:     q.Until,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	productLookup := ledger.LookupFromSlice(products)
	supplierLookup := uc.supplierLookup(ctx)

	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.NewMovementResponse(m, productLookup, supplierLookup))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

func (uc *RegisterMovementUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Error().Err(err).Msg("no se pudo invalidar la caché de reportes")
	}
}

func (uc *RegisterMovementUseCase) supplierLookup(ctx context.Context) func(string) (entity.Supplier, bool) {
	suppliers, err := uc.supplierRepo.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("no se pudo listar proveedores")
	}
	byID := make(map[string]entity.Supplier, len(suppliers))
	for _, s := range suppliers {
		byID[s.ID] = s
	}
	return func(id string) (entity.Supplier, bool) {
		s, ok := byID[id]
		return s, ok
	}
}
