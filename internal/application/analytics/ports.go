// Package analytics contiene los casos de uso de reportes derivados del historial de movimientos:
// compras por proveedor, variación de precios, consumo, panel principal y exportaciones de texto.
package analytics

import "context"

// ReportCache guarda reportes ya calculados. Get devuelve la generación vigente al leer;
// Set recibe esa generación y no escribe si entretanto hubo un Invalidate.
// Invalidate descarta todos los reportes; se llama al cambiar el historial o el catálogo.
type ReportCache interface {
	Get(ctx context.Context, key string, dst any) (hit bool, gen int64, err error)
	Set(ctx context.Context, gen int64, key string, value any) error
	Invalidate(ctx context.Context) error
}
