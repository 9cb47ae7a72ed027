package middleware

import (
	"errors"
	"strings"

	"event_ticketing/config"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Protected requires a valid JWT (cookie or bearer header) and stores the
// identity claims in Locals. The payment core only ever consumes the
// resulting "authenticated identity + role" value.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(config.Config("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}

		c.Locals("identity", claimFromToken(jwtToken))
		return c.Next()
	}
}

// RequireOrganizer gates organizer-only routes. Must run after Protected.
func RequireOrganizer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := c.Locals("identity").(model.TokenClaim)
		if !ok || (identity.Role != "ORGANIZER" && identity.Role != "ADMIN") {
			return utils.ErrorResponse(c, 403, "Organizer access required", nil)
		}
		return c.Next()
	}
}

func claimFromToken(token *jwt.Token) model.TokenClaim {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}
	}

	claim := model.TokenClaim{}
	if id, ok := claims["userId"].(float64); ok {
		claim.UserID = uint(id)
	}
	if email, ok := claims["email"].(string); ok {
		claim.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		claim.Role = role
	}
	return claim
}
