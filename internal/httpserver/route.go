package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/product_service/internal/db"
	"github.com/Skotchmaster/product_service/internal/metrics"
	"github.com/Skotchmaster/product_service/internal/middleware/auth"
	"github.com/Skotchmaster/product_service/internal/transport"
)

type Deps struct {
	DB             *gorm.DB
	ProductHandler *ProductHTTP
	Metrics        *metrics.Metrics
	JWTSecret      []byte
	SearchEnabled  bool
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, transport.MessageResponse{Message: "products service"})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := pkgdb.Ping(c.Request().Context(), d.DB); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}

	products := e.Group("/products")
	if d.SearchEnabled {
		products.GET("/search", d.ProductHandler.SearchProducts)
	}
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	adminOnly := auth.RequireAdmin(d.JWTSecret)
	products.POST("", d.ProductHandler.CreateProduct, adminOnly)
	products.PUT("/:id", d.ProductHandler.PatchProduct, adminOnly)
	products.PATCH("/:id", d.ProductHandler.PatchProduct, adminOnly)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, adminOnly)
}
