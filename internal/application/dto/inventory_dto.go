package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID   string           `json:"product_id"`
	Type        string           `json:"type"` // receipt | consumption
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	SupplierID  string           `json:"supplier_id,omitempty"`
	OrderNumber string           `json:"order_number,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// MovementResponse un movimiento del historial con nombres resueltos.
type MovementResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	ProductName  string           `json:"product_name"`
	Type         string           `json:"type"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Unit         string           `json:"unit,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	SupplierID   string           `json:"supplier_id,omitempty"`
	SupplierName string           `json:"supplier_name,omitempty"`
	OrderNumber  string           `json:"order_number,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
}

// RegisterMovementResponse movimiento registrado y estado resultante del producto.
type RegisterMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	Product  ProductResponse  `json:"product"`
	Clamped  bool             `json:"clamped"` // la salida superó el stock y se saturó en cero
}

// MovementHistoryQuery filtros de GET /api/inventory/movements.
type MovementHistoryQuery struct {
	ProductID string     `query:"product_id"`
	Type      string     `query:"type"`
	Since     *time.Time `query:"-"`
	Until     *time.Time `query:"-"`
	PageRequest
}

// MovementListResponse página del historial.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto con stock bajo,
// calculada a partir de su consumo reciente.
type ReplenishmentSuggestionDTO struct {
	ProductID           string           `json:"product_id"`
	ProductName         string           `json:"product_name"`
	Unit                string           `json:"unit"`
	CurrentStock        decimal.Decimal  `json:"current_stock"`
	ReorderThreshold    decimal.Decimal  `json:"reorder_threshold"`
	AveragePerActiveDay decimal.Decimal  `json:"average_per_active_day"`
	DaysRemaining       *decimal.Decimal `json:"days_remaining"`      // nil = sin consumo, no se agota
	SuggestedOrderQty   decimal.Decimal  `json:"suggested_order_qty"` // ceil(promedio * 30)
	SeedOrderQty        decimal.Decimal  `json:"seed_order_qty"`      // 2 * punto de reposición
	Priority            int              `json:"priority"`            // 1 = más urgente
}
