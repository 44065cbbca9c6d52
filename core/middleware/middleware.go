package middleware

import (
	"strconv"
	"strings"
	"time"

	"creator-ledger/core/constants"
	"creator-ledger/core/errors"
	"creator-ledger/core/logger"
	"creator-ledger/core/metrics"
	"creator-ledger/core/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type Middleware struct {
	serviceSecret []byte
}

func NewMiddleware(serviceSecret string) *Middleware {
	return &Middleware{serviceSecret: []byte(serviceSecret)}
}

// RequestID reuses an inbound X-Request-ID or mints one.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(constants.HeaderRequestID)
			if id == "" {
				id = utils.GenerateID()
			}
			c.Set(constants.ContextRequestID, id)
			c.Response().Header().Set(constants.HeaderRequestID, id)
			return next(c)
		}
	}
}

// Observe logs and records metrics for every request.
func (m *Middleware) Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			elapsed := time.Since(start)

			metrics.HTTPRequests.WithLabelValues(route, c.Request().Method, strconv.Itoa(status)).Inc()
			metrics.HTTPDuration.WithLabelValues(route, c.Request().Method).Observe(elapsed.Seconds())

			logger.Info("HTTP:Request",
				"request_id", c.Get(constants.ContextRequestID),
				"method", c.Request().Method,
				"route", route,
				"status", status,
				"duration_ms", elapsed.Milliseconds(),
			)
			return nil
		}
	}
}

// ServiceAuth guards internal endpoints called by other backend processes. The bearer token
// is an HS256 JWT whose "scope" claim must equal scope.
func (m *Middleware) ServiceAuth(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing authorization header", nil)
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid authorization header", nil)
			}
			if len(m.serviceSecret) == 0 {
				logger.Error("Middleware:ServiceAuth:NoSecretConfigured")
				return errors.NewAppError(errors.ErrUnauthorized, "service authentication is not configured", nil)
			}

			claims := &ServiceClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				return m.serviceSecret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
				}
				return errors.NewAppError(errors.ErrUnauthorized, "invalid service token", err)
			}
			if claims.Scope != scope {
				return errors.NewAppError(errors.ErrForbidden, "token scope does not allow this action", nil)
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

type ServiceClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// SignServiceToken is used by operators and tests to mint internal tokens.
func SignServiceToken(secret, scope, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := ServiceClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
