package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/Skotchmaster/pet_place/internal/metrics"
	authmw "github.com/Skotchmaster/pet_place/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/pet_place/internal/middleware/logging"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	ChatHandler    *ChatHTTP
	NewsHandler    *NewsHTTP
	Identity       *authmw.Identity
	Metrics        *metrics.Metrics
	// Ready reports whether the store answers; nil means always ready.
	Ready         func(ctx context.Context) error
	SearchEnabled bool
}

// New builds the echo instance with the global middleware chain and every
// route registered.
func New(log zerolog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}
	e.Use(loggingmw.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAuthorization, authmw.HeaderUserID},
		ExposeHeaders: []string{headerTotalCount},
	}))
	e.Use(echomiddleware.BodyLimit("10M"))

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "database unavailable"})
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	api := e.Group("/api")
	requireAuth := d.Identity.RequireAuth
	requireAdmin := d.Identity.RequireAdmin

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)
	api.GET("/verify", d.AuthHandler.Verify)
	api.POST("/logout", d.AuthHandler.Logout)

	api.GET("/categories", d.CatalogHandler.Categories)
	if d.SearchEnabled {
		api.GET("/search", d.CatalogHandler.SearchProducts)
	}

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	admin := products.Group("", requireAdmin)
	admin.POST("", d.CatalogHandler.CreateProduct)
	admin.PUT("/:id", d.CatalogHandler.UpdateProduct)
	admin.PATCH("/:id", d.CatalogHandler.PatchProduct)
	admin.DELETE("/:id", d.CatalogHandler.DeleteProduct)

	chat := api.Group("/chat", requireAuth)
	chat.POST("", d.ChatHandler.PostMessage)
	chat.POST("/reply", d.ChatHandler.PostReply)
	chat.GET("", d.ChatHandler.GetMessages)
	chat.GET("/all", d.ChatHandler.GetAllMessages)

	api.GET("/news", d.NewsHandler.List)
	api.POST("/news", d.NewsHandler.Create, requireAuth)
	api.DELETE("/news/:id", d.NewsHandler.Delete, requireAuth)
}
