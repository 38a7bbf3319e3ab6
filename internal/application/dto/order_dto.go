package dto

import "github.com/shopspring/decimal"

// OrderItemDTO ítem de un pedido en borrador.
type OrderItemDTO struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// DraftOrderResponse pedido en borrador sembrado con los productos de stock bajo.
type DraftOrderResponse struct {
	Items []OrderItemDTO `json:"items"`
}

// OrderPreviewRequest body de POST /api/orders/preview y /api/orders/pdf/:supplierId.
type OrderPreviewRequest struct {
	Items []OrderItemDTO `json:"items"`
}

// OrderLineDTO línea del pedido con el producto resuelto.
type OrderLineDTO struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// SupplierOrderDTO pedido de un proveedor: líneas, mensaje y enlace de mensajería.
type SupplierOrderDTO struct {
	SupplierID     string          `json:"supplier_id"`
	SupplierName   string          `json:"supplier_name"`
	Phone          string          `json:"phone"`
	Lines          []OrderLineDTO  `json:"lines"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Message        string          `json:"message"`
	MessageLink    string          `json:"message_link,omitempty"` // vacío si el proveedor no tiene teléfono válido
}

// OrderPreviewResponse pedidos agrupados por proveedor.
type OrderPreviewResponse struct {
	Orders         []SupplierOrderDTO `json:"orders"`
	EstimatedValue decimal.Decimal    `json:"estimated_value"`
}
