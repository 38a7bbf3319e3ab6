package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierPurchasesDTO compras a un proveedor en la ventana.
type SupplierPurchasesDTO struct {
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Value        decimal.Decimal `json:"value"`
	Count        int             `json:"count"`
}

// PurchasesReportResponse GET /api/reports/purchases.
type PurchasesReportResponse struct {
	WindowDays int                    `json:"window_days"`
	From       time.Time              `json:"from"`
	To         time.Time              `json:"to"`
	Total      decimal.Decimal        `json:"total"`
	Suppliers  []SupplierPurchasesDTO `json:"suppliers"`
}

// PriceDriftDTO variación del costo unitario de un producto entre sus dos últimas entradas.
type PriceDriftDTO struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	PercentChange decimal.Decimal `json:"percent_change"`
}

// PriceDriftReportResponse GET /api/reports/price-drift.
type PriceDriftReportResponse struct {
	Items []PriceDriftDTO `json:"items"`
}

// ConsumptionDTO consumo de un producto en la ventana con proyección.
type ConsumptionDTO struct {
	ProductID           string           `json:"product_id"`
	ProductName         string           `json:"product_name"`
	Unit                string           `json:"unit"`
	Stock               decimal.Decimal  `json:"stock"`
	TotalConsumed       decimal.Decimal  `json:"total_consumed"`
	ActiveDays          int              `json:"active_days"`
	AveragePerActiveDay decimal.Decimal  `json:"average_per_active_day"`
	DaysRemaining       *decimal.Decimal `json:"days_remaining"` // nil = infinito
	SuggestedOrderQty   decimal.Decimal  `json:"suggested_order_qty"`
}

// ConsumptionReportResponse GET /api/reports/consumption.
type ConsumptionReportResponse struct {
	WindowDays int              `json:"window_days"`
	Items      []ConsumptionDTO `json:"items"`
}

// DashboardSummaryResponse resumen del panel principal.
type DashboardSummaryResponse struct {
	TotalProducts   int                `json:"total_products"`
	TotalSuppliers  int                `json:"total_suppliers"`
	StockValue      decimal.Decimal    `json:"stock_value"`
	LowStockCount   int                `json:"low_stock_count"`
	LowStock        []ProductResponse  `json:"low_stock"`
	RecentMovements []MovementResponse `json:"recent_movements"`
	GeneratedAt     time.Time          `json:"generated_at"`
}

// TextExport reporte de texto plano descargable.
type TextExport struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}
