package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
	"github.com/imrishuroy/go-storefront-orderflow/internal/catalog"
	"github.com/imrishuroy/go-storefront-orderflow/internal/logging"
	"github.com/imrishuroy/go-storefront-orderflow/internal/models"
	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
	"github.com/imrishuroy/go-storefront-orderflow/internal/validation"
)

// CatalogReader is the catalog boundary. Only Lookup reports errors.
type CatalogReader interface {
	ListProducts(ctx context.Context, category string) []models.Product
	GetProduct(ctx context.Context, id int64) *models.Product
	Lookup(ctx context.Context, id int64) (*models.Product, error)
	ListCategories(ctx context.Context) []string
	Page(ctx context.Context, category string) catalog.Page
}

// AdminAPI is the pass-through part of the backend client.
type AdminAPI interface {
	CreateProduct(ctx context.Context, p models.ProductCreate) (*models.Product, error)
	ListOrders(ctx context.Context) ([]models.OrderRecord, error)
	UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (*models.ImageUpload, error)
	Health(ctx context.Context) bool
}

// OrderSubmitter validates and dispatches order forms.
type OrderSubmitter interface {
	Check(form validation.OrderForm) validation.FieldErrors
	Submit(ctx context.Context, formID string, form validation.OrderForm, product orders.ProductRef) (orders.Result, error)
}

type ReadinessProbe interface {
	Ready() bool
}

// HandlerConfig groups dependencies for the storefront routes.
type HandlerConfig struct {
	Catalog CatalogReader
	Admin   AdminAPI
	Orders  OrderSubmitter
	Ready   ReadinessProbe
	Logger  *zap.Logger
}

// RegisterRoutes registers the storefront API on r.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	cfg.Logger = logging.OrNop(cfg.Logger)

	r.GET("/health", healthHandler(cfg))

	api := r.Group("/api")
	registerCatalogRoutes(api, cfg)
	registerOrdersRoutes(api, cfg)
	registerAdminRoutes(api.Group("/admin"), cfg)
}

// adminError writes the classified status for err with its detail. Buyer
// routes never use it.
func adminError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{
		"error":  apperr.Kind(err),
		"detail": err.Error(),
	})
}

func badRequest(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": code})
}
