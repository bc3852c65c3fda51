package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"bookswap/internal/auth"
	"bookswap/internal/config"
	"bookswap/internal/errors"
	"bookswap/internal/handler"
	"bookswap/internal/logging"
)

// Handlers groups the HTTP handlers wired by Register.
type Handlers struct {
	Auth     *handler.AuthHandler
	Profile  *handler.ProfileHandler
	Listings *handler.ListingHandler
	Swaps    *handler.SwapHandler
	Ratings  *handler.RatingHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *zap.Logger,
	jwtService *auth.JWTService,
	tokens auth.TokenStoreInterface,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	optional := auth.OptionalMiddleware(jwtService, tokens)

	// Public routes
	api.POST("/auth/login", h.Auth.Login, loginLimiter(cfg.LoginRateLimit))
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.GET("/listings", h.Listings.Browse)
	api.GET("/listings/:id", h.Listings.Detail, optional...)
	api.GET("/books/:id/ratings", h.Ratings.Averages)

	// Secured routes (require JWT authentication)
	secured := api.Group("", auth.Middleware(jwtService, tokens)...)

	secured.POST("/auth/logout", h.Auth.Logout)

	secured.GET("/me", h.Profile.GetProfile)
	secured.PUT("/me", h.Profile.UpdateProfile)
	secured.GET("/me/listings", h.Profile.Library)

	secured.POST("/listings", h.Listings.Create)
	secured.PUT("/listings/:id", h.Listings.Update)
	secured.DELETE("/listings/:id", h.Listings.Delete)
	secured.POST("/listings/:id/swaps", h.Swaps.Request)

	secured.GET("/swaps/inbox", h.Swaps.Inbox)
	secured.GET("/swaps/outbox", h.Swaps.Outbox)
	secured.GET("/swaps/:id", h.Swaps.Detail)
	secured.POST("/swaps/:id/accept", h.Swaps.Accept)
	secured.POST("/swaps/:id/decline", h.Swaps.Decline)
	secured.POST("/swaps/:id/complete", h.Swaps.Complete)
	secured.POST("/swaps/:id/cancel", h.Swaps.Cancel)

	secured.PUT("/books/:id/rating", h.Ratings.Rate)
}

// loginLimiter throttles logins per client IP. A non-positive limit disables it.
func loginLimiter(perSecond int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(rate.Limit(perSecond)),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, errors.ErrorResponse{
				Error: "too many login attempts",
				Code:  "RATE_LIMITED",
			})
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
