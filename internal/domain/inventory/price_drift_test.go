package inventory_test

import (
	"testing"

	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePriceDrift_DatosInsuficientes(t *testing.T) {
	_, ok := inventory.ComputePriceDrift("p1", nil)
	assert.False(t, ok)

	_, ok = inventory.ComputePriceDrift("p1", []entity.Movement{
		receipt("p1", "1", decPtr("2"), "sup-1", daysAgo(2)),
		receipt("p1", "1", nil, "sup-1", daysAgo(1)),
		receipt("p2", "1", decPtr("3"), "sup-1", daysAgo(1)),
	})
	assert.False(t, ok, "solo cuentan las entradas con costo del mismo producto")
}

func TestComputePriceDrift_UsaLasDosMasRecientes(t *testing.T) {
	movements := []entity.Movement{
		receipt("p1", "1", decPtr("4.00"), "sup-1", daysAgo(1)),
		receipt("p1", "1", decPtr("1.00"), "sup-1", daysAgo(10)),
		receipt("p1", "1", decPtr("5.00"), "sup-1", daysAgo(5)),
		consumption("p1", "1", testNow),
	}
	drift, ok := inventory.ComputePriceDrift("p1", movements)
	require.True(t, ok)
	assert.True(t, drift.Current.Equal(dec("4")))
	assert.True(t, drift.Previous.Equal(dec("5")))
	assert.True(t, drift.PercentChange.Equal(dec("-20")), "fue %s", drift.PercentChange)
}

func TestComputePriceDrift_CostoAnteriorCero(t *testing.T) {
	_, ok := inventory.ComputePriceDrift("p1", []entity.Movement{
		receipt("p1", "1", decPtr("0"), "sup-1", daysAgo(2)),
		receipt("p1", "1", decPtr("3"), "sup-1", daysAgo(1)),
	})
	assert.False(t, ok, "costo anterior cero se trata como datos insuficientes")
}

func TestPriceDrifts_OrdenPorMagnitud(t *testing.T) {
	products := []entity.Product{product("a", "1", "1", "1"), product("b", "1", "1", "1"), product("c", "1", "1", "1")}
	movements := []entity.Movement{
		receipt("a", "1", decPtr("10"), "sup-1", daysAgo(2)),
		receipt("a", "1", decPtr("11"), "sup-1", daysAgo(1)), // +10%
		receipt("b", "1", decPtr("10"), "sup-1", daysAgo(2)),
		receipt("b", "1", decPtr("5"), "sup-1", daysAgo(1)), // -50%
		receipt("c", "1", decPtr("10"), "sup-1", daysAgo(1)), // insuficiente
	}
	drifts := inventory.PriceDrifts(products, movements)
	require.Len(t, drifts, 2)
	assert.Equal(t, "b", drifts[0].ProductID)
	assert.Equal(t, "a", drifts[1].ProductID)
}
