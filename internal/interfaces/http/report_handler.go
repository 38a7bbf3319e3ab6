package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sorveteria-estoque/internal/application/analytics"
)

const defaultWindowDays = 30

// ReportHandler reportes de compras, precios, consumo y tablero.
type ReportHandler struct {
	uc *analytics.ReportsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Purchases godoc
// @Summary      Compras por proveedor
// @Description  Entradas con proveedor dentro de la ventana, ordenadas por valor descendente.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        window  query  int  false  "Días (7, 30, 90, 365)"  default(30)
// @Success      200  {object}  dto.PurchasesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/purchases [get]
func (h *ReportHandler) Purchases(c *fiber.Ctx) error {
	out, err := h.uc.Purchases(c.Context(), c.QueryInt("window", defaultWindowDays))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PriceDrift godoc
// @Summary      Variación de precios
// @Description  Compara las dos últimas entradas con costo de cada producto.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PriceDriftReportResponse
// @Router       /api/reports/price-drift [get]
func (h *ReportHandler) PriceDrift(c *fiber.Ctx) error {
	out, err := h.uc.PriceDrift(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Consumption godoc
// @Summary      Consumo por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        window  query  int  false  "Días"  default(30)
// @Success      200  {object}  dto.ConsumptionReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/consumption [get]
func (h *ReportHandler) Consumption(c *fiber.Ctx) error {
	out, err := h.uc.Consumption(c.Context(), c.QueryInt("window", defaultWindowDays))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen del tablero
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte de texto
// @Tags         reports
// @Security     Bearer
// @Produce      plain
// @Param        kind    path   string  true   "estoque-baixo | compras-fornecedor"
// @Param        window  query  int     false  "Días (compras)"  default(30)
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export/{kind} [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	out, err := h.uc.Export(c.Context(), c.Params("kind"), c.QueryInt("window", defaultWindowDays))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(out.FileName)
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(out.Content)
}
