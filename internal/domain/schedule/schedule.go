package schedule

import "time"

// ClampDay ajusta un día de cobro (1-31) al último día real del mes dado.
// Un contrato con rent_due_day=31 vence el 28/29 en febrero y el 30 en los
// meses de 30 días.
func ClampDay(year int, month time.Month, day int) int {
	if day < 1 {
		day = 1
	}
	last := lastDayOfMonth(year, month)
	if day > last {
		return last
	}
	return day
}

// NextPaymentDate calcula la próxima fecha de vencimiento de la renta dado el
// día de cobro del contrato. Si el vencimiento de este mes todavía no pasó,
// devuelve la fecha de este mes; si ya pasó, la del mes siguiente (con
// rollover diciembre → enero).
func NextPaymentDate(today time.Time, rentDueDay int) time.Time {
	year, month, _ := today.Date()
	day := ClampDay(year, month, rentDueDay)
	due := time.Date(year, month, day, 0, 0, 0, 0, today.Location())

	todayDate := time.Date(year, month, today.Day(), 0, 0, 0, 0, today.Location())
	if !todayDate.After(due) {
		return due
	}

	// Ya pasó el día de cobro de este mes: el pago vence el mes siguiente
	nextYear, nextMonth := year, month+1
	if month == time.December {
		nextYear, nextMonth = year+1, time.January
	}
	nextDay := ClampDay(nextYear, nextMonth, rentDueDay)
	return time.Date(nextYear, nextMonth, nextDay, 0, 0, 0, 0, today.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// El día 0 del mes siguiente es el último día de este mes
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
