package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/domain/actor"
	"github.com/tu-usuario/rentpro/pkg/jwt"
)

// Local key para el Actor en Fiber.
const LocalActor = "actor"

// AuthMiddleware valida el Bearer Token JWT y materializa el actor.Actor en
// c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, actorType, profileID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		t, ok := actor.ParseType(actorType)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "tipo de actor desconocido"})
		}
		c.Locals(LocalActor, actor.Actor{Type: t, UserID: userID, ProfileID: profileID})
		return c.Next()
	}
}

// OptionalAuthMiddleware materializa el Actor si viene un Bearer Token válido
// y deja pasar la petición sin token. Un token presente pero inválido sí corta.
func OptionalAuthMiddleware(jwtSecret string) fiber.Handler {
	required := AuthMiddleware(jwtSecret)
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		return required(c)
	}
}

// GetActor devuelve el Actor del contexto (después del middleware de auth).
func GetActor(c *fiber.Ctx) actor.Actor {
	v := c.Locals(LocalActor)
	if v == nil {
		return actor.Actor{}
	}
	a, _ := v.(actor.Actor)
	return a
}

// RequireOwner exige un actor propietario (o superadmin).
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		a := GetActor(c)
		if !a.IsOwner() && !a.IsSuperAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol propietario"})
		}
		return c.Next()
	}
}

// RequireSuperAdmin exige el actor con privilegios globales.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetActor(c).IsSuperAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol superadmin"})
		}
		return c.Next()
	}
}
