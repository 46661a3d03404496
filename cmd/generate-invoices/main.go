// Binario batch para emitir las facturas de renta próximas a vencer.
// Pensado para correr a diario vía cron:
//
//	0 6 * * * /usr/local/bin/generate-invoices
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/rentpro/internal/application/billing"
	"github.com/tu-usuario/rentpro/internal/infrastructure/notify"
	"github.com/tu-usuario/rentpro/internal/infrastructure/postgres"
	"github.com/tu-usuario/rentpro/internal/infrastructure/stripegw"
	"github.com/tu-usuario/rentpro/pkg/config"
	"github.com/tu-usuario/rentpro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	leaseRepo := postgres.NewLeaseRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	ownerRepo := postgres.NewOwnerRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	accountRepo := postgres.NewBankAccountRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	provider := stripegw.New(cfg.Stripe.SecretKey, log)
	notifier := notify.New(notificationRepo, log)

	billingUC := billing.NewBillingUseCase(
		txRunner, invoiceRepo, paymentRepo, leaseRepo, propertyRepo, ownerRepo,
		tenantRepo, accountRepo, provider, notifier,
		billing.Config{
			SuccessURL:    cfg.Stripe.SuccessURL,
			CancelURL:     cfg.Stripe.CancelURL,
			WebhookSecret: cfg.Stripe.WebhookSecret,
		},
		log,
	)

	asOf := time.Now()
	report := billingUC.GenerateDueInvoices(asOf)

	fmt.Printf("Contratos revisados: %d\n", report.Scanned)
	fmt.Printf("Facturas emitidas:   %d\n", len(report.Created))
	for _, number := range report.Created {
		fmt.Printf("  - %s\n", number)
	}
	fmt.Printf("Omitidos:            %d\n", report.Skipped)

	// Los errores por contrato no abortan la corrida: se reportan y el
	// siguiente ciclo los reintenta.
	if len(report.Errors) > 0 {
		fmt.Printf("Errores:             %d\n", len(report.Errors))
		for leaseID, err := range report.Errors {
			log.Error().Err(err).Str("lease_id", leaseID).Msg("no se pudo emitir la factura")
		}
	}
}
