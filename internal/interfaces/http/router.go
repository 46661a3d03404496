package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentpro/internal/application/auth"
	"github.com/tu-usuario/rentpro/internal/application/billing"
	"github.com/tu-usuario/rentpro/internal/application/lease"
	"github.com/tu-usuario/rentpro/internal/application/notification"
	"github.com/tu-usuario/rentpro/internal/application/registry"
	"github.com/tu-usuario/rentpro/internal/application/subscription"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	PlanUC         *subscription.PlanUseCase
	SubscriptionUC *subscription.SubscriptionUseCase
	RegistryUC     *registry.RegistryUseCase
	LeaseUC        *lease.LeaseUseCase
	BillingUC      *billing.BillingUseCase
	NotificationUC *notification.NotificationUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público; register-tenant acepta token de propietario opcional)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register-owner", authHandler.RegisterOwner)
	authGroup.Post("/register-tenant", OptionalAuthMiddleware(deps.JWTSecret), authHandler.RegisterTenant)
	authGroup.Post("/login", authHandler.Login)

	// Webhook del gateway (público; autenticado por firma)
	webhookHandler := NewWebhookHandler(deps.BillingUC)
	api.Post("/webhooks/stripe", webhookHandler.Handle)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Planes: listado para cualquier autenticado, administración solo superadmin
	plans := protected.Group("/plans")
	planHandler := NewPlanHandler(deps.PlanUC)
	plans.Get("/", planHandler.List)
	plans.Get("/:id", planHandler.GetByID)
	plans.Post("/", RequireSuperAdmin(), planHandler.Create)
	plans.Put("/:id", RequireSuperAdmin(), planHandler.Update)
	plans.Delete("/:id", RequireSuperAdmin(), planHandler.Delete)

	// Suscripciones (propietario)
	subs := protected.Group("/subscriptions", RequireOwner())
	subscriptionHandler := NewSubscriptionHandler(deps.SubscriptionUC)
	subs.Post("/activate", subscriptionHandler.Activate)
	subs.Get("/active", subscriptionHandler.GetActive)
	subs.Get("/quota", subscriptionHandler.Quota)
	subs.Get("/", subscriptionHandler.List)

	// Propiedades y unidades
	propertyHandler := NewPropertyHandler(deps.RegistryUC)
	properties := protected.Group("/properties")
	properties.Post("/", RequireOwner(), propertyHandler.Create)
	properties.Get("/", RequireOwner(), propertyHandler.List)
	properties.Get("/:id", propertyHandler.GetByID)
	properties.Put("/:id", RequireOwner(), propertyHandler.Update)
	properties.Delete("/:id", RequireOwner(), propertyHandler.Delete)
	properties.Post("/:id/units", RequireOwner(), propertyHandler.AddUnit)
	properties.Post("/:id/images", RequireOwner(), propertyHandler.AddImage)
	properties.Post("/:id/bank-accounts", RequireOwner(), propertyHandler.CreateBankAccount)
	properties.Get("/:id/bank-accounts", RequireOwner(), propertyHandler.ListBankAccounts)

	units := protected.Group("/units", RequireOwner())
	units.Put("/:id", propertyHandler.UpdateUnit)
	units.Delete("/:id", propertyHandler.DeleteUnit)

	images := protected.Group("/images", RequireOwner())
	images.Delete("/:id", propertyHandler.DeleteImage)

	accounts := protected.Group("/bank-accounts", RequireOwner())
	accounts.Put("/:id", propertyHandler.UpdateBankAccount)
	accounts.Delete("/:id", propertyHandler.DeleteBankAccount)

	// Contratos de arrendamiento
	leases := protected.Group("/leases")
	leaseHandler := NewLeaseHandler(deps.LeaseUC)
	leases.Post("/", RequireOwner(), leaseHandler.Create)
	leases.Get("/", leaseHandler.List)
	leases.Get("/:id", leaseHandler.GetByID)
	leases.Put("/:id", RequireOwner(), leaseHandler.Update)
	leases.Patch("/:id/status", RequireOwner(), leaseHandler.ChangeStatus)
	leases.Delete("/:id", RequireOwner(), leaseHandler.Delete)

	// Facturación y pagos
	billingHandler := NewBillingHandler(deps.BillingUC)
	invoices := protected.Group("/invoices")
	invoices.Post("/", RequireOwner(), billingHandler.Create)
	invoices.Get("/", billingHandler.List)
	invoices.Post("/verify-checkout", billingHandler.VerifyCheckout)
	invoices.Get("/:id", billingHandler.GetByID)
	invoices.Post("/:id/checkout", billingHandler.Checkout)

	payments := protected.Group("/payments")
	payments.Post("/", RequireOwner(), billingHandler.RecordPayment)
	payments.Get("/", billingHandler.ListPayments)
	leases.Post("/:id/security-deposit", RequireOwner(), billingHandler.SecurityDeposit)

	// Notificaciones del usuario autenticado
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
}
