// Package catalog is the read-only product catalog boundary used by the
// storefront. Listing failures never escape it: callers get an empty list
// or no product, and the cause is logged. Lookup is the one read that
// reports why a product is missing.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
	"github.com/imrishuroy/go-storefront-orderflow/internal/logging"
	"github.com/imrishuroy/go-storefront-orderflow/internal/models"
)

// Source is the subset of the backend client the catalog reads from.
type Source interface {
	ListProducts(ctx context.Context, category string, active bool) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type Client struct {
	src    Source
	logger *zap.Logger
}

func New(src Source, logger *zap.Logger) *Client {
	return &Client{src: src, logger: logging.OrNop(logger)}
}

// Page is what the shop view renders: products plus the category menu.
type Page struct {
	Products   []models.Product `json:"products"`
	Categories []string         `json:"categories"`
}

// ListProducts returns active products, optionally filtered by category.
func (c *Client) ListProducts(ctx context.Context, category string) []models.Product {
	products, err := c.src.ListProducts(ctx, category, true)
	if err != nil {
		c.logger.Warn("list products failed", zap.String("category", category), zap.Error(err))
		return []models.Product{}
	}
	if products == nil {
		return []models.Product{}
	}
	return products
}

// GetProduct returns nil when the product is absent or cannot be fetched.
func (c *Client) GetProduct(ctx context.Context, id int64) *models.Product {
	p, err := c.src.GetProduct(ctx, id)
	if err != nil {
		c.logger.Warn("get product failed", zap.Int64("product_id", id), zap.Error(err))
		return nil
	}
	return p
}

// Lookup returns the product or why it is missing. An unknown product
// matches apperr.ErrNotFound; any other error means the catalog could not
// be reached.
func (c *Client) Lookup(ctx context.Context, id int64) (*models.Product, error) {
	p, err := c.src.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup product %d: %w", id, err)
	}
	if p == nil {
		return nil, fmt.Errorf("lookup product %d: %w", id, apperr.ErrNotFound)
	}
	return p, nil
}

func (c *Client) ListCategories(ctx context.Context) []string {
	cats, err := c.src.ListCategories(ctx)
	if err != nil {
		c.logger.Warn("list categories failed", zap.Error(err))
		return []string{}
	}
	if cats == nil {
		return []string{}
	}
	return cats
}

// Page fetches products and categories concurrently. Each half degrades
// to empty on its own.
func (c *Client) Page(ctx context.Context, category string) Page {
	var page Page
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page.Products = c.ListProducts(gctx, category)
		return nil
	})
	g.Go(func() error {
		page.Categories = c.ListCategories(gctx)
		return nil
	})

	_ = g.Wait()
	return page
}
