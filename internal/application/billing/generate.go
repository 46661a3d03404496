package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/schedule"
)

// GenerateReport resultado de una corrida del generador de facturas de renta.
type GenerateReport struct {
	Scanned int
	Created []string // números de factura emitidos
	Skipped int      // leases sin vencimiento en la ventana o ya facturados
	Errors  map[string]error
}

// GenerateDueInvoices emite las facturas de renta que vencen dentro de
// LeadDays días a partir de asOf, una por contrato activo. Es idempotente:
// si ya existe una factura de renta del contrato con ese vencimiento no crea
// otra. Un error en un contrato se registra en el reporte y no aborta la
// corrida.
func (uc *BillingUseCase) GenerateDueInvoices(asOf time.Time) *GenerateReport {
	report := &GenerateReport{Errors: make(map[string]error)}

	leases, err := uc.leaseRepo.ListActiveEndingAfter(asOf)
	if err != nil {
		report.Errors[""] = err
		return report
	}
	target := asOf.AddDate(0, 0, uc.cfg.LeadDays)

	for _, lease := range leases {
		report.Scanned++
		due := schedule.NextPaymentDate(asOf, lease.RentDueDay)
		if !sameDay(due, target) {
			report.Skipped++
			continue
		}
		exists, err := uc.invoiceRepo.ExistsForLeaseAndDue(lease.ID, due, entity.InvoiceTypeRent)
		if err != nil {
			report.Errors[lease.ID] = err
			continue
		}
		if exists {
			report.Skipped++
			continue
		}

		now := time.Now()
		invoice := &entity.Invoice{
			ID:            uuid.New().String(),
			LeaseID:       lease.ID,
			PropertyID:    lease.PropertyID,
			UnitID:        lease.UnitID,
			TenantID:      lease.TenantID,
			InvoiceNumber: newInvoiceNumber(),
			InvoiceType:   entity.InvoiceTypeRent,
			Description:   "Renta mensual con vencimiento " + due.Format(dateLayout),
			Amount:        lease.MonthlyRent,
			TotalAmount:   lease.MonthlyRent,
			DueDate:       due,
			IssueDate:     now,
			Status:        entity.InvoiceStatusPending,
			BankAccountID: lease.BankAccountID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.invoiceRepo.Create(invoice); err != nil {
			report.Errors[lease.ID] = err
			continue
		}
		report.Created = append(report.Created, invoice.InvoiceNumber)
		uc.log.Info().
			Str("lease_id", lease.ID).
			Str("invoice_number", invoice.InvoiceNumber).
			Time("due_date", due).
			Msg("factura de renta emitida")

		uc.notifyTenantOfInvoice(invoice)
	}
	return report
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
