package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/inventory"
)

// Tipos de exportación de texto.
const (
	ExportLowStock          = "estoque-baixo"
	ExportSupplierPurchases = "compras-fornecedor"
)

// Export genera un reporte de texto plano descargable.
// Para compras por proveedor usa la ventana windowDays.
func (uc *ReportsUseCase) Export(ctx context.Context, kind string, windowDays int) (*dto.TextExport, error) {
	var b strings.Builder
	switch kind {
	case ExportLowStock:
		products, err := uc.productRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		b.WriteString("Relatório de Estoque Baixo\n\n")
		for _, p := range inventory.LowStock(products) {
			fmt.Fprintf(&b, "%s: %s %s (Mín: %s)\n", p.Name, p.Stock, p.Unit, p.ReorderThreshold)
		}
	case ExportSupplierPurchases:
		report, err := uc.Purchases(ctx, windowDays)
		if err != nil {
			return nil, err
		}
		b.WriteString("Relatório de Compras por Fornecedor\n\n")
		for _, s := range report.Suppliers {
			fmt.Fprintf(&b, "%s: R$ %s (%d compras)\n", s.SupplierName, s.Value.StringFixed(2), s.Count)
		}
	default:
		return nil, fmt.Errorf("%w: tipo de reporte %q", domain.ErrInvalidInput, kind)
	}
	return &dto.TextExport{
		FileName: fmt.Sprintf("relatorio-%s-%s.txt", kind, uc.now().UTC().Format("2006-01-02")),
		Content:  b.String(),
	}, nil
}
