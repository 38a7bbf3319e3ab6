package usecase

import (
	"context"

	"github.com/jhoicas/sorveteria-estoque/pkg/logger"
)

// ReportInvalidator descarta los reportes en caché. Los reportes muestran nombres del catálogo
// y omiten productos borrados, así que cualquier alta, cambio o baja los invalida.
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

func invalidateReports(ctx context.Context, cache ReportInvalidator, log *logger.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Error().Err(err).Msg("no se pudo invalidar la caché de reportes")
	}
}
