package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/bookly/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/bookly/internal/middleware/logging"
	"github.com/Skotchmaster/bookly/internal/models"
)

type Deps struct {
	AuthHandler   *AuthHTTP
	BookHandler   *BookHTTP
	ReviewHandler *ReviewHTTP
	TagHandler    *TagHTTP

	Guard *auth.Guard
	Users auth.UserFinder

	// Ready checks backing stores for /health/ready.
	Ready []func(ctx context.Context) error
}

// New builds the echo instance with the service-wide middleware, validator
// and error handler.
func New(logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		for _, check := range d.Ready {
			if err := check(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	access := d.Guard.Require(auth.Access)
	refresh := d.Guard.Require(auth.Refresh)
	current := auth.CurrentUser(d.Users)
	anyRole := auth.RoleChecker(models.RoleAdmin, models.RoleUser)
	adminOnly := auth.RoleChecker(models.RoleAdmin)

	api := e.Group("/api/v1")

	a := api.Group("/auth")
	a.POST("/signup", d.AuthHandler.Signup)
	a.GET("/verify/:token", d.AuthHandler.Verify)
	a.POST("/login", d.AuthHandler.Login)
	a.GET("/refresh_token", d.AuthHandler.Refresh, refresh)
	a.GET("/me", d.AuthHandler.Me, access, current, anyRole)
	a.GET("/logout", d.AuthHandler.Logout, access)
	a.POST("/password-reset-request", d.AuthHandler.PasswordResetRequest)
	a.POST("/password-reset-confirm/:token", d.AuthHandler.PasswordResetConfirm)
	a.POST("/send_mail", d.AuthHandler.SendMail, access, current, adminOnly)

	books := api.Group("/books", access, current, anyRole)
	books.GET("", d.BookHandler.List)
	books.GET("/search", d.BookHandler.Search)
	books.GET("/user/:uid", d.BookHandler.ByUser)
	books.GET("/:uid", d.BookHandler.Get)
	books.POST("", d.BookHandler.Create)
	books.PATCH("/:uid", d.BookHandler.Patch)
	books.DELETE("/:uid", d.BookHandler.Delete)

	reviews := api.Group("/reviews", access, current, anyRole)
	reviews.GET("", d.ReviewHandler.List)
	reviews.GET("/:uid", d.ReviewHandler.Get)
	reviews.POST("/book/:uid", d.ReviewHandler.Add)
	reviews.DELETE("/:uid", d.ReviewHandler.Delete)

	tags := api.Group("/tags", access, current)
	tags.GET("", d.TagHandler.List, anyRole)
	tags.POST("", d.TagHandler.Create, anyRole)
	tags.POST("/book/:uid/tags", d.TagHandler.AddToBook, anyRole)
	tags.PUT("/:uid", d.TagHandler.Update, adminOnly)
	tags.DELETE("/:uid", d.TagHandler.Delete, adminOnly)
}
