package inventory_test

import (
	"testing"
	"time"

	"github.com/jhoicas/sorveteria-estoque/internal/domain"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/entity"
	"github.com/jhoicas/sorveteria-estoque/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumptionStats_DosDiasActivos(t *testing.T) {
	movements := []entity.Movement{
		consumption("p1", "4", daysAgo(2)),
		consumption("p1", "6", daysAgo(1)),
		receipt("p1", "100", decPtr("1"), "sup-1", daysAgo(1)),
		consumption("p2", "99", daysAgo(1)),
	}
	stats, err := inventory.ComputeConsumptionStats("p1", movements, 30, testNow, saoPaulo)
	require.NoError(t, err)
	assert.True(t, stats.TotalConsumed.Equal(dec("10")))
	assert.Equal(t, 2, stats.ActiveDays)
	assert.True(t, stats.AveragePerActiveDay.Equal(dec("5")))

	p := product("p1", "50", "5", "1")
	proj := inventory.ProjectedDaysRemaining(p, stats)
	assert.False(t, proj.Infinite)
	assert.True(t, proj.Days.Equal(dec("10")), "fue %s", proj.Days)
	assert.True(t, inventory.SuggestedReorderQuantity(stats).Equal(dec("150")))
}

func TestConsumptionStats_MismoDiaLocalCuentaUnaVez(t *testing.T) {
	morning := time.Date(2026, 3, 14, 9, 0, 0, 0, saoPaulo)
	// 23:30 en São Paulo es 02:30 UTC del día siguiente: sigue siendo el mismo día local.
	lateNight := time.Date(2026, 3, 15, 2, 30, 0, 0, time.UTC)
	movements := []entity.Movement{
		consumption("p1", "1", morning),
		consumption("p1", "2", lateNight),
	}
	stats, err := inventory.ComputeConsumptionStats("p1", movements, 7, testNow, saoPaulo)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ActiveDays)
	assert.True(t, stats.AveragePerActiveDay.Equal(dec("3")))

	stats, err = inventory.ComputeConsumptionStats("p1", movements, 7, testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ActiveDays, "en UTC son fechas distintas")
}

func TestConsumptionStats_SinActividad(t *testing.T) {
	movements := []entity.Movement{consumption("p1", "5", daysAgo(40))}
	stats, err := inventory.ComputeConsumptionStats("p1", movements, 30, testNow, saoPaulo)
	require.NoError(t, err)
	assert.True(t, stats.TotalConsumed.IsZero())
	assert.Equal(t, 0, stats.ActiveDays)
	assert.True(t, stats.AveragePerActiveDay.IsZero())

	proj := inventory.ProjectedDaysRemaining(product("p1", "50", "5", "1"), stats)
	assert.True(t, proj.Infinite)
	assert.True(t, inventory.SuggestedReorderQuantity(stats).IsZero())
}

func TestConsumptionStats_VentanaInvalida(t *testing.T) {
	_, err := inventory.ComputeConsumptionStats("p1", nil, -1, testNow, saoPaulo)
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}

func TestSuggestedReorderQuantity_RedondeaHaciaArriba(t *testing.T) {
	stats := inventory.ConsumptionStats{AveragePerActiveDay: dec("0.34")}
	assert.True(t, inventory.SuggestedReorderQuantity(stats).Equal(dec("11")), "0.34*30 = 10.2 -> 11")
}
