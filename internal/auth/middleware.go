package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const contextKey = "user"

// Middleware verifies the bearer token, which must be an access token not revoked by logout.
// Handlers read the verified claims with ClaimsFrom.
func Middleware(jwtService *JWTService, tokens TokenStoreInterface) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{verifier(jwtService, false), accessCheck(tokens, false)}
}

// OptionalMiddleware identifies the caller when a valid, unrevoked bearer token is present and lets
// anonymous requests through otherwise.
func OptionalMiddleware(jwtService *JWTService, tokens TokenStoreInterface) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{verifier(jwtService, true), accessCheck(tokens, true)}
}

func verifier(jwtService *JWTService, optional bool) echo.MiddlewareFunc {
	cfg := echojwt.Config{
		SigningKey:  jwtService.Secret(),
		ContextKey:  contextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
	}
	if optional {
		cfg.ContinueOnIgnoredError = true
		cfg.ErrorHandler = func(c echo.Context, err error) error {
			return nil
		}
	}
	return echojwt.WithConfig(cfg)
}

// accessCheck rejects refresh tokens presented as bearer tokens and access tokens revoked by logout.
// In optional mode such a caller continues as anonymous.
func accessCheck(tokens TokenStoreInterface, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				if optional {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			reason := ""
			if claims.Type != TokenTypeAccess {
				reason = "access token required"
			} else if blacklisted, err := tokens.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID); err == nil && blacklisted {
				reason = "token revoked"
			}
			if reason == "" {
				return next(c)
			}
			if optional {
				c.Set(contextKey, nil)
				return next(c)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, reason)
		}
	}
}

// ClaimsFrom returns the claims of the verified token on the request.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	token, ok := c.Get(contextKey).(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	return claims, ok
}
