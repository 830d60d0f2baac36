package middleware

import (
	"strings"

	"lojagames/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthRequired is a Fiber middleware that checks for a valid JWT. The token
// comes from the Authorization header, or from the jwt cookie set by a
// remember-me login when no header is present.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tokenString string

		authHeader := c.Get("Authorization")
		switch {
		case authHeader != "":
			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if !(len(parts) == 2 && parts[0] == "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Authorization header format must be 'Bearer <token>'",
				})
			}
			tokenString = parts[1]
		case c.Cookies("jwt") != "":
			tokenString = c.Cookies("jwt")
		default:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Autenticação necessária",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			logrus.WithError(err).Debug("JWT validation failed")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido ou expirado",
			})
		}

		// Store the token subject for subsequent handlers.
		if sub, ok := claims["sub"].(string); ok {
			c.Locals("userName", sub)
		}

		return c.Next()
	}
}
