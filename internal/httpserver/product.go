package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Skotchmaster/pet_place/internal/logging"
	"github.com/Skotchmaster/pet_place/internal/metrics"
	authmw "github.com/Skotchmaster/pet_place/internal/middleware/auth"
	"github.com/Skotchmaster/pet_place/internal/models"
	"github.com/Skotchmaster/pet_place/internal/service"
	"github.com/Skotchmaster/pet_place/internal/transport"
	"github.com/Skotchmaster/pet_place/internal/util"
)

const headerTotalCount = "X-Total-Count"

type CatalogHTTP struct {
	Svc     *service.CatalogService
	Metrics *metrics.Metrics
}

func (h *CatalogHTTP) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Categories)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "product.get_products").Logger()

	f, err := transport.ParseProductFilter(c.QueryParams())
	if err != nil {
		l.Warn().Err(err).Int("status", 400).Msg("get_products_error")
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	total, items, err := h.Svc.List(ctx, f)
	if err != nil {
		return fail(l, "get_products_error", err)
	}

	c.Response().Header().Set(headerTotalCount, strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "product.get_product").Logger()

	id, err := parseID(c, l, "get_product_error")
	if err != nil {
		return err
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "product.create").Logger()

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn().Err(err).Int("status", 400).Msg("product_create_error")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "product_create_error", err)
	}

	product, err := h.Svc.Create(ctx, authmw.CallerID(c), req)
	if err != nil {
		return fail(l, "product_create_error", err)
	}

	h.Metrics.ProductWrite("create")
	l.Info().Uint("product_id", product.ID).Msg("create_product_success")
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "product.update").Logger()

	id, err := parseID(c, l, "product_update_error")
	if err != nil {
		return err
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn().Err(err).Int("status", 400).Msg("product_update_error")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "product_update_error", err)
	}

	product, err := h.Svc.Update(ctx, authmw.CallerID(c), id, req)
	if err != nil {
		return fail(l, "product_update_error", err)
	}

	h.Metrics.ProductWrite("update")
	l.Info().Uint("product_id", id).Msg("update_product_success")
	return c.JSON(http.StatusOK, transport.UpdateProductResponse{
		Message: "Product updated",
		Product: product,
	})
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "product.patch").Logger()

	id, err := parseID(c, l, "product_patch_error")
	if err != nil {
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn().Err(err).Int("status", 400).Msg("product_patch_error")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "product_patch_error", err)
	}

	product, err := h.Svc.Patch(ctx, authmw.CallerID(c), id, req)
	if err != nil {
		return fail(l, "product_patch_error", err)
	}

	h.Metrics.ProductWrite("patch")
	l.Info().Uint("product_id", id).Msg("patch_product_success")
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "product.delete").Logger()

	id, err := parseID(c, l, "product_delete_error")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, authmw.CallerID(c), id); err != nil {
		return fail(l, "product_delete_error", err)
	}

	h.Metrics.ProductWrite("delete")
	l.Info().Uint("product_id", id).Msg("delete_product_success")
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Product deleted"})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With().Str("handler", "product.search").Logger()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.Search(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return fail(l, "search_products_error", err)
	}
	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: items})
}

func parseID(c echo.Context, l zerolog.Logger, event string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		l.Warn().Str("id", c.Param("id")).Int("status", 400).Msg(event)
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return uint(id), nil
}
