// Package orders arma los pedidos a proveedores a partir de un borrador: agrupa por proveedor,
// redacta el mensaje, construye el enlace de mensajería y genera la orden de compra en PDF.
// Los pedidos no se persisten.
package orders

import (
	"context"
	"time"

	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PurchaseOrderDocument datos que necesita la representación impresa de un pedido.
type PurchaseOrderDocument struct {
	Supplier       entity.Supplier
	Lines          []entity.OrderLine
	EstimatedValue decimal.Decimal
	Message        string
	MessageLink    string // vacío si el teléfono no es utilizable
	IssuedAt       time.Time
}

// PurchaseOrderPDFGenerator genera el PDF de un pedido (implementado en infraestructura).
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(ctx context.Context, doc PurchaseOrderDocument) ([]byte, error)
}
