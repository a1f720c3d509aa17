package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	"blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// principalKey is the context key the resolved user is attached under.
const principalKey = "principal"

// PrincipalFrom returns the authenticated user attached by Protect or
// OptionalProtect, if any.
func PrincipalFrom(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(principalKey).(*model.User)
	return user, ok
}

// Protect requires a valid bearer token and attaches the resolved user to the
// request context. Requests without a valid token never reach the handler.
func Protect(jwtService *auth.JWTService, users repository.UserRepository) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(jwtConfig(jwtService, false))
	resolve := resolvePrincipal(users, true)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(resolve(next))
	}
}

// OptionalProtect attaches the user when a valid bearer token is present but
// never rejects the request; on a missing or invalid token the handler runs
// with no principal attached.
func OptionalProtect(jwtService *auth.JWTService, users repository.UserRepository) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(jwtConfig(jwtService, true))
	resolve := resolvePrincipal(users, false)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(resolve(next))
	}
}

// RequireAdmin rejects requests whose principal is not an admin. It must run
// after Protect.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, ok := PrincipalFrom(c)
		if !ok || !principal.Role.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "admin access required",
				Code:  "ADMIN_ONLY",
			})
		}
		return next(c)
	}
}

// jwtConfig delegates token parsing to JWTService so session claims stay in
// one place. In optional mode token errors are swallowed and the chain
// continues unauthenticated.
func jwtConfig(jwtService *auth.JWTService, optional bool) echojwt.Config {
	cfg := echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	}
	if optional {
		cfg.ContinueOnIgnoredError = true
		cfg.ErrorHandler = func(c echo.Context, err error) error {
			return nil
		}
	} else {
		cfg.ErrorHandler = func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHORIZED",
			})
		}
	}
	return cfg
}

// resolvePrincipal loads the user for validated claims and attaches it as the
// request principal. The password hash never serializes (json:"-").
func resolvePrincipal(users repository.UserRepository, required bool) echo.MiddlewareFunc {
	unauthorized := func() error {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHORIZED",
		})
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				if required {
					return unauthorized()
				}
				return next(c)
			}
			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if required {
					return unauthorized()
				}
				return next(c)
			}
			c.Set(principalKey, user)
			return next(c)
		}
	}
}
