package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const identityKey = "auth_identity"

// Identity is the authenticated staff member extracted from the bearer token.
type Identity struct {
	Subject string
	Name    string
	Roles   []string
}

// HasRole reports whether the identity carries any of the given roles.
func (id *Identity) HasRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range id.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// FromContext returns the authenticated identity, or nil when unauthenticated.
func FromContext(c echo.Context) *Identity {
	id, _ := c.Get(identityKey).(*Identity)
	return id
}

// JWTMiddleware validates HS256 bearer tokens issued by the clinic's identity
// provider and stores the resulting Identity on the request context.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ident := &Identity{}
			if sub, ok := claims["sub"].(string); ok {
				ident.Subject = sub
			}
			if name, ok := claims["name"].(string); ok {
				ident.Name = name
			}
			if roles, ok := claims["roles"].([]interface{}); ok {
				for _, r := range roles {
					if s, ok := r.(string); ok {
						ident.Roles = append(ident.Roles, s)
					}
				}
			}

			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// DevAuthMiddleware grants every request an admin identity. Development only.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(identityKey, &Identity{
				Subject: "dev-user",
				Name:    "Development User",
				Roles:   []string{"admin"},
			})
			return next(c)
		}
	}
}

// RequireRole rejects requests whose identity lacks all of the given roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := FromContext(c)
			if ident == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !ident.HasRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
