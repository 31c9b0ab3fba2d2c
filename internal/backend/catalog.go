package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/imrishuroy/go-storefront-orderflow/internal/models"
)

// ListProducts calls GET /productos. An empty category means no filter.
func (c *Client) ListProducts(ctx context.Context, category string, active bool) ([]models.Product, error) {
	q := url.Values{}
	if category != "" {
		q.Set("categoria", category)
	}
	q.Set("activo", strconv.FormatBool(active))

	var out []models.Product
	if err := c.getJSON(ctx, "list products", "/productos?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct calls GET /productos/{id}.
func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var out models.Product
	if err := c.getJSON(ctx, "get product", "/productos/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct calls POST /productos.
func (c *Client) CreateProduct(ctx context.Context, p models.ProductCreate) (*models.Product, error) {
	var out models.Product
	if err := c.postJSON(ctx, "create product", "/productos", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCategories calls GET /categorias and unwraps {"categorias": [...]}.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var out struct {
		Categories []string `json:"categorias"`
	}
	if err := c.getJSON(ctx, "list categories", "/categorias", &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}
