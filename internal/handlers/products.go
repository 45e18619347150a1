package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/colemanmx/coleman-mx/internal/shopify"
)

// storefront mirrors shopify.Client.
type storefront interface {
	Products(ctx context.Context) ([]shopify.Product, error)
	Collections(ctx context.Context) ([]shopify.Collection, error)
}

type ProductsHandler struct {
	shop storefront
}

func NewProductsHandler(shop storefront) *ProductsHandler {
	return &ProductsHandler{shop: shop}
}

// HandleListProducts handles GET /api/products - storefront catalog for the shop page
func (h *ProductsHandler) HandleListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	if h.shop == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Shop is not configured")
	}

	var (
		products    []shopify.Product
		collections []shopify.Collection
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = h.shop.Products(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		collections, err = h.shop.Collections(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("failed to fetch storefront catalog", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to fetch products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"products":    products,
		"collections": collections,
	})
}
