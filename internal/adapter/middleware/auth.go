package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"farmtally-backend/internal/domain/actor"
)

// ActorContextKey mirrors the http adapter's lookup key.
const ActorContextKey = "actor"

// Claims are the custom payload in the access token.
type Claims struct {
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed HS256 JWT valid for 24h.
func GenerateToken(secret []byte, userID, organizationID string, role actor.Role) (string, error) {
	claims := Claims{
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// JWT validates the bearer token and stashes the resulting actor in the
// echo context. Everything behind it can assume an authenticated,
// organization-scoped caller.
func JWT(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing Authorization header"})
			}
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "malformed Authorization header"})
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			if claims.UserID == "" || claims.OrganizationID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "incomplete token claims"})
			}
			role := actor.Role(claims.Role)
			if role != actor.RoleFarmAdmin && role != actor.RoleFieldManager {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "unknown role"})
			}

			c.Set(ActorContextKey, actor.Actor{
				UserID:         claims.UserID,
				OrganizationID: claims.OrganizationID,
				Role:           role,
			})
			return next(c)
		}
	}
}
