package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/rentpro/internal/application/auth"
	"github.com/tu-usuario/rentpro/internal/application/billing"
	"github.com/tu-usuario/rentpro/internal/application/lease"
	"github.com/tu-usuario/rentpro/internal/application/notification"
	"github.com/tu-usuario/rentpro/internal/application/registry"
	"github.com/tu-usuario/rentpro/internal/application/subscription"
	"github.com/tu-usuario/rentpro/internal/infrastructure/notify"
	"github.com/tu-usuario/rentpro/internal/infrastructure/postgres"
	"github.com/tu-usuario/rentpro/internal/infrastructure/stripegw"
	httpRouter "github.com/tu-usuario/rentpro/internal/interfaces/http"
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
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	ownerRepo := postgres.NewOwnerRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	propertyRepo := postgres.NewPropertyRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	accountRepo := postgres.NewBankAccountRepository(pool)
	imageRepo := postgres.NewImageRepository(pool)
	leaseRepo := postgres.NewLeaseRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	provider := stripegw.New(cfg.Stripe.SecretKey, log)
	notifier := notify.New(notificationRepo, log)

	authUC := auth.NewAuthUseCase(txRunner, userRepo, ownerRepo, tenantRepo, propertyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	planUC := subscription.NewPlanUseCase(planRepo)
	subscriptionUC := subscription.NewSubscriptionUseCase(txRunner, subRepo, planRepo, propertyRepo, unitRepo, provider, log)
	registryUC := registry.NewRegistryUseCase(txRunner, propertyRepo, unitRepo, accountRepo, imageRepo, leaseRepo)
	leaseUC := lease.NewLeaseUseCase(txRunner, leaseRepo, unitRepo, propertyRepo, tenantRepo, notifier)
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
	notificationUC := notification.NewNotificationUseCase(notificationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "RentPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		PlanUC:         planUC,
		SubscriptionUC: subscriptionUC,
		RegistryUC:     registryUC,
		LeaseUC:        leaseUC,
		BillingUC:      billingUC,
		NotificationUC: notificationUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
