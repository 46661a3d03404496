package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/rentpro/internal/domain/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Antes del día de cobro: el pago vence este mismo mes.
func TestNextPaymentDate_AntesDelDiaDeCobro(t *testing.T) {
	got := schedule.NextPaymentDate(date(2024, time.January, 10), 15)
	assert.Equal(t, date(2024, time.January, 15), got)
}

// Después del día de cobro: el pago pasa al mes siguiente.
func TestNextPaymentDate_DespuesDelDiaDeCobro(t *testing.T) {
	got := schedule.NextPaymentDate(date(2024, time.January, 20), 15)
	assert.Equal(t, date(2024, time.February, 15), got)
}

// El mismo día de cobro cuenta como vigente (today <= due).
func TestNextPaymentDate_MismoDia(t *testing.T) {
	got := schedule.NextPaymentDate(date(2024, time.January, 15), 15)
	assert.Equal(t, date(2024, time.January, 15), got)
}

// Rollover diciembre → enero del año siguiente.
func TestNextPaymentDate_RolloverDiciembre(t *testing.T) {
	got := schedule.NextPaymentDate(date(2024, time.December, 20), 15)
	assert.Equal(t, date(2025, time.January, 15), got)
}

// Día 31 en febrero bisiesto: se clampa al 29.
func TestNextPaymentDate_Dia31FebreroBisiesto(t *testing.T) {
	got := schedule.NextPaymentDate(date(2024, time.February, 10), 31)
	assert.Equal(t, date(2024, time.February, 29), got)
}

// Día 31 en febrero no bisiesto: se clampa al 28.
func TestNextPaymentDate_Dia31FebreroNoBisiesto(t *testing.T) {
	got := schedule.NextPaymentDate(date(2025, time.February, 10), 31)
	assert.Equal(t, date(2025, time.February, 28), got)
}

// Día 31 pasando de enero (ya vencido) a febrero: el mes siguiente también clampa.
func TestNextPaymentDate_Dia31EneroVencidoClampaFebrero(t *testing.T) {
	got := schedule.NextPaymentDate(date(2025, time.January, 31), 30)
	assert.Equal(t, date(2025, time.February, 28), got)
}

func TestClampDay(t *testing.T) {
	assert.Equal(t, 29, schedule.ClampDay(2024, time.February, 31))
	assert.Equal(t, 28, schedule.ClampDay(2025, time.February, 31))
	assert.Equal(t, 30, schedule.ClampDay(2024, time.April, 31))
	assert.Equal(t, 15, schedule.ClampDay(2024, time.April, 15))
	assert.Equal(t, 1, schedule.ClampDay(2024, time.April, 0))
}
