// Package middleware provides HTTP middleware for the shipping API:
// bearer token verification, authorization and request ids.
package middleware

import (
	"errors"
	"log"
	"strings"

	"shipfee/internal/models"
	"shipfee/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies bearer tokens issued by the storefront auth
// service and stores the claims in the request context. It never issues
// tokens.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

// Handler validates the Authorization header. It checks for:
// - Presence of Authorization header with Bearer token
// - HS256 signature with the configured secret
// - Token expiration (required)
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	if len(m.secret) == 0 {
		log.Println("JWT_SECRET is not configured, rejecting authenticated request")
		return response.Unauthorized(c, "authentication is not configured")
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Unauthorized(c, "invalid authorization format")
	}

	claims, err := m.parse(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return response.Unauthorized(c, "invalid token")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

func (m *AuthMiddleware) parse(tokenString string) (*models.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// AdminAuthMiddleware verifies that the request has valid admin claims.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c, "Invalid claims")
	}

	if claims.Role != "admin" {
		log.Printf("Access denied: user %d has role %s, not admin", claims.UserID, claims.Role)
		return response.Forbidden(c, "Insufficient permissions")
	}

	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
// Admins hold every permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		if claims.Role == "admin" || claims.HasPermission(permission) {
			return c.Next()
		}

		log.Printf("Access denied: user %d lacks %s", claims.UserID, permission)
		return response.Forbidden(c, "Insufficient permissions")
	}
}
