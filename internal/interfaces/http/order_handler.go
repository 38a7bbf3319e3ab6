package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/application/inventory"
	"github.com/jhoicas/sorveteria-estoque/internal/application/orders"
)

// OrderHandler pedidos a proveedores: borrador, vista previa y PDF.
type OrderHandler struct {
	uc            *orders.OrderUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, replenishment *inventory.ReplenishmentUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, replenishment: replenishment}
}

// DraftLowStock godoc
// @Summary      Borrador desde stock bajo
// @Description  Un ítem por producto con stock bajo, cantidad = 2 x punto de reposición.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DraftOrderResponse
// @Router       /api/orders/draft/low-stock [post]
func (h *OrderHandler) DraftLowStock(c *fiber.Ctx) error {
	out, err := h.replenishment.DraftLowStockOrder(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Vista previa de pedidos por proveedor
// @Description  Agrupa el borrador por proveedor con mensaje y enlace de WhatsApp.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderPreviewRequest  true  "Ítems del borrador"
// @Success      200   {object}  dto.OrderPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/preview [post]
func (h *OrderHandler) Preview(c *fiber.Ctx) error {
	var in dto.OrderPreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Preview(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PurchaseOrderPDF godoc
// @Summary      Orden de compra en PDF
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        supplierId  path  string                   true  "ID del proveedor"
// @Param        body        body  dto.OrderPreviewRequest  true  "Ítems del borrador"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/pdf/{supplierId} [post]
func (h *OrderHandler) PurchaseOrderPDF(c *fiber.Ctx) error {
	supplierID := c.Params("supplierId")
	if supplierID == "" {
		return missingID(c)
	}
	var in dto.OrderPreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	doc, fileName, err := h.uc.PurchaseOrderPDF(c.Context(), supplierID, in)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(fileName)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}
