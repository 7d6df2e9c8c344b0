package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_service/internal/logging"
	"github.com/Skotchmaster/product_service/internal/service"
	"github.com/Skotchmaster/product_service/internal/transport"
	"github.com/Skotchmaster/product_service/internal/util"
)

const invalidDataMessage = "request denied, invalid data type"

type ProductHTTP struct {
	Svc *service.ProductService
}

func notFound(id string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Product with id %s does not exist", id))
}

// parseID accepts unsigned decimal ids only; anything else cannot name a row.
func parseID(c echo.Context) (uint, string, bool) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || id == 0 {
		return 0, idParam, false
	}
	return uint(id), idParam, true
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, idParam, ok := parseID(c)
	if !ok {
		l.Warn("get_product_failed", "status", 404, "reason", "id is not an integer", "id", idParam)
		return notFound(idParam)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product with this id dont exist", "error", err)
			return notFound(idParam)
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

// GetProducts returns every product unless page or size is given, in which
// case one page is returned. The body is always a bare array.
func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	offset, limit := 0, -1
	if c.QueryParam("page") != "" || c.QueryParam("size") != "" {
		page := util.ParseIntDefault(c.QueryParam("page"), 1)
		size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
		offset, limit = util.Calculate(page, size)
	}

	total, items, err := h.Svc.GetProducts(ctx, offset, limit)
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot get products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get products")
	}

	c.Response().Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	l.Debug("get_products_success", "count", len(items))
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_product")

	fields, err := transport.DecodeProductFields(c.Request().Body)
	if err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, invalidDataMessage)
	}

	created, err := h.Svc.CreateProduct(ctx, fields)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, invalidDataMessage)
		}
		l.Error("product_create_error", "status", 500, "reason", "cannot add product to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to db")
	}

	l.Info("create_product_success", "productID", created.ID)
	return c.JSON(http.StatusCreated, created)
}

// PatchProduct serves both PUT and PATCH; only the keys present in the body change.
func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "patch_product")

	id, idParam, ok := parseID(c)
	if !ok {
		l.Warn("product_patch_error", "status", 404, "reason", "id is not an integer", "id", idParam)
		return notFound(idParam)
	}

	fields, err := transport.DecodeProductFields(c.Request().Body)
	if err != nil {
		l.Warn("product_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, invalidDataMessage)
	}

	prod, err := h.Svc.PatchProduct(ctx, id, fields)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			l.Warn("product_patch_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, invalidDataMessage)
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("product_patch_error", "status", 404, "reason", "cannot find product in db", "error", err)
			return notFound(idParam)
		}
		l.Error("product_patch_error", "status", 500, "reason", "cannot update product in db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product in db")
	}

	l.Info("patch_product_success", "productID", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_product")

	id, idParam, ok := parseID(c)
	if !ok {
		l.Warn("product_delete_error", "status", 404, "reason", "id is not an integer", "id", idParam)
		return notFound(idParam)
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("product_delete_error", "status", 404, "reason", "product not found", "error", err)
			return notFound(idParam)
		}
		l.Error("product_delete_error", "status", 500, "reason", "cannot delete product from db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product from db")
	}

	l.Info("delete_product_success", "productID", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: fmt.Sprintf("Product with id %s has been deleted", idParam),
	})
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query error")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := h.Svc.SearchProducts(ctx, q, from, size)
	if err != nil {
		if errors.Is(err, service.ErrSearchDisabled) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
		}
		l.Error("search_products_error", "status", 500, "reason", "search failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: products})
}
