package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Suscripciones y cupos
	ErrNoActiveSubscription = errors.New("el propietario no tiene una suscripción activa")
	ErrQuotaExceeded        = errors.New("límite del plan de suscripción alcanzado")
	ErrPlanInUse            = errors.New("el plan está referenciado por suscripciones activas")

	// Ciclo de vida de contratos
	ErrInvalidTransition    = errors.New("transición de estado no permitida")
	ErrLeaseOverlap         = errors.New("la unidad ya está arrendada en ese período")
	ErrTenantHasActiveLease = errors.New("el inquilino ya tiene un contrato activo en esta propiedad")
	ErrUnitUnavailable      = errors.New("la unidad no está disponible")
	ErrHasActiveLeases      = errors.New("la propiedad tiene contratos de arrendamiento activos")

	// Facturación y proveedor de pagos
	ErrPaymentAccountMisconfigured = errors.New("la propiedad no tiene una cuenta de cobro configurada")
	ErrProviderError               = errors.New("error del proveedor de pagos") // puede reintentarse
)
