package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/generated/servers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

var errMissingToken = errors.New("missing bearer token")

// ActorClaims are the claims the storefront reads from an access token.
type ActorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ActorMiddleware resolves the current actor from an HS256 bearer token. The subject is the
// actor id and the role claim one of customer, admin, staff or delivery.
func ActorMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := parseActor(c.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: err.Error(),
				})
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func parseActor(header string, secret []byte) (kernel.Actor, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return kernel.Actor{}, errMissingToken
	}

	var claims ActorClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("invalid token: %w", err)
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("invalid token subject: %w", err)
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("invalid token role: %w", err)
	}
	return kernel.NewActor(id, role)
}

// IssueToken signs an access token for actor. The storefront does not log users in; this is
// used by tests and the dev token command.
func IssueToken(secret []byte, actor kernel.Actor, now time.Time, ttl time.Duration) (string, error) {
	claims := ActorClaims{
		Role: string(actor.Role()),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func currentActor(c echo.Context) kernel.Actor {
	actor, _ := c.Get(actorKey).(kernel.Actor)
	return actor
}
