package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/inventory"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// OrderUseCase prepara los pedidos por proveedor a partir de un borrador.
type OrderUseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	pdf          PurchaseOrderPDFGenerator
	countryCode  string
	now          func() time.Time
}

// NewOrderUseCase construye el caso de uso. countryCode es el prefijo telefónico del enlace (ej. "55").
func NewOrderUseCase(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	pdf PurchaseOrderPDFGenerator,
	countryCode string,
) *OrderUseCase {
	return &OrderUseCase{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		pdf:          pdf,
		countryCode:  countryCode,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *OrderUseCase) WithClock(now func() time.Time) *OrderUseCase {
	uc.now = now
	return uc
}

// supplierOrder grupo resuelto de un proveedor.
type supplierOrder struct {
	supplier entity.Supplier
	lines    []entity.OrderLine
}

// Preview agrupa el borrador por proveedor y devuelve, por proveedor, las líneas, el valor
// estimado, el mensaje y el enlace. Los ítems sin producto o sin proveedor existente se descartan.
func (uc *OrderUseCase) Preview(ctx context.Context, in dto.OrderPreviewRequest) (*dto.OrderPreviewResponse, error) {
	groups, err := uc.group(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderPreviewResponse{Orders: make([]dto.SupplierOrderDTO, 0, len(groups))}
	for _, g := range groups {
		order := uc.toDTO(g)
		out.EstimatedValue = out.EstimatedValue.Add(order.EstimatedValue)
		out.Orders = append(out.Orders, order)
	}
	return out, nil
}

// PurchaseOrderPDF genera la orden de compra de un proveedor. Devuelve el PDF y el nombre del archivo.
func (uc *OrderUseCase) PurchaseOrderPDF(ctx context.Context, supplierID string, in dto.OrderPreviewRequest) ([]byte, string, error) {
	groups, err := uc.group(ctx, in.Items)
	if err != nil {
		return nil, "", err
	}
	for _, g := range groups {
		if g.supplier.ID != supplierID {
			continue
		}
		msg := BuildSupplierMessage(g.supplier, g.lines)
		link, _ := MessageLink(uc.countryCode, g.supplier.Phone, msg)
		issuedAt := uc.now()
		doc, err := uc.pdf.GeneratePurchaseOrderPDF(ctx, PurchaseOrderDocument{
			Supplier:       g.supplier,
			Lines:          g.lines,
			EstimatedValue: estimatedValue(g.lines),
			Message:        msg,
			MessageLink:    link,
			IssuedAt:       issuedAt,
		})
		if err != nil {
			return nil, "", err
		}
		return doc, fmt.Sprintf("pedido-%s-%s.pdf", g.supplier.ID, issuedAt.Format("2006-01-02")), nil
	}
	return nil, "", fmt.Errorf("%w: el borrador no tiene ítems para el proveedor %q", domain.ErrNotFound, supplierID)
}

// group valida el borrador, lo agrupa con el núcleo y ordena los grupos por nombre de proveedor.
func (uc *OrderUseCase) group(ctx context.Context, items []dto.OrderItemDTO) ([]supplierOrder, error) {
	draft := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" || !it.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: cada ítem necesita producto y cantidad mayor a cero", domain.ErrInvalidInput)
		}
		draft = append(draft, entity.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.supplierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Supplier, len(suppliers))
	for _, s := range suppliers {
		byID[s.ID] = s
	}

	grouped := inventory.GroupOrderItemsBySupplier(draft, inventory.LookupFromSlice(products))
	out := make([]supplierOrder, 0, len(grouped))
	for supplierID, lines := range grouped {
		s, ok := byID[supplierID]
		if !ok {
			continue
		}
		out = append(out, supplierOrder{supplier: s, lines: lines})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].supplier.Name != out[j].supplier.Name {
			return out[i].supplier.Name < out[j].supplier.Name
		}
		return out[i].supplier.ID < out[j].supplier.ID
	})
	return out, nil
}

func (uc *OrderUseCase) toDTO(g supplierOrder) dto.SupplierOrderDTO {
	msg := BuildSupplierMessage(g.supplier, g.lines)
	link, _ := MessageLink(uc.countryCode, g.supplier.Phone, msg)
	lines := make([]dto.OrderLineDTO, 0, len(g.lines))
	for _, l := range g.lines {
		lines = append(lines, dto.OrderLineDTO{
			ProductID:     l.Product.ID,
			ProductName:   l.Product.Name,
			Unit:          l.Product.Unit,
			Quantity:      l.Quantity,
			UnitCost:      l.Product.UnitCost,
			EstimatedCost: l.EstimatedCost(),
		})
	}
	return dto.SupplierOrderDTO{
		SupplierID:     g.supplier.ID,
		SupplierName:   g.supplier.Name,
		Phone:          g.supplier.Phone,
		Lines:          lines,
		EstimatedValue: estimatedValue(g.lines),
		Message:        msg,
		MessageLink:    link,
	}
}

// estimatedValue Σ cantidad × costo unitario actual.
func estimatedValue(lines []entity.OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.EstimatedCost())
	}
	return total
}
