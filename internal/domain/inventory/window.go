package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/sorveteria-estoque/internal/domain"
)

// RecognizedWindows ventanas (en días) que ofrecen los reportes. El núcleo acepta cualquier ventana positiva.
var RecognizedWindows = []int{7, 30, 90, 365}

// Window es el intervalo cerrado [Start, End] de un reporte.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow construye la ventana [now - days, now].
func NewWindow(days int, now time.Time) (Window, error) {
	if days <= 0 {
		return Window{}, fmt.Errorf("%w: %d", domain.ErrInvalidWindow, days)
	}
	return Window{Start: now.AddDate(0, 0, -days), End: now}, nil
}

// Contains indica si t cae dentro de la ventana (extremos incluidos).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
