package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
	"github.com/imrishuroy/go-storefront-orderflow/internal/middleware"
	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
	"github.com/imrishuroy/go-storefront-orderflow/internal/validation"
)

// FormIDHeader identifies one open order form across submit clicks.
const FormIDHeader = "X-Form-Id"

func registerOrdersRoutes(g *gin.RouterGroup, cfg HandlerConfig) {
	g.POST("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()

		if cfg.Ready != nil && !cfg.Ready.Ready() {
			c.JSON(http.StatusServiceUnavailable, orders.Result{OK: false, Message: orders.MessageNotReady})
			return
		}

		form, err := validation.BindForm(c)
		if err != nil {
			// BindForm already wrote a 400
			return
		}

		// Field rules first so an invalid form never reaches the network.
		if fe := cfg.Orders.Check(form); fe != nil {
			c.JSON(http.StatusUnprocessableEntity, orders.Result{
				OK:      false,
				Message: orders.MessageInvalidForm,
				Fields:  fe,
			})
			return
		}

		productID, err := strconv.ParseInt(form.Normalized().ProductID, 10, 64)
		if err != nil || productID <= 0 {
			c.JSON(http.StatusUnprocessableEntity, orders.Result{
				OK:      false,
				Message: orders.MessageInvalidForm,
				Fields:  validation.FieldErrors{"producto_id": "Seleccioná un producto"},
			})
			return
		}

		product, err := productRef(ctx, cfg, form, productID)
		if err != nil {
			c.JSON(http.StatusNotFound, orders.Result{OK: false, Message: orders.MessageUnknownProduct})
			return
		}

		res, err := cfg.Orders.Submit(ctx, c.GetHeader(FormIDHeader), form, product)
		if err != nil {
			_ = c.Error(err)
			cfg.Logger.Warn("order submission failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.String("order_request_id", res.RequestID),
				zap.Int64("product_id", productID),
				zap.String("error_kind", apperr.Kind(err)),
				zap.Error(err))
		}
		c.JSON(apperr.HTTPStatus(err), res)
	})
}

// productRef resolves the posted product id. An unknown product is final.
// When the catalog cannot be reached the form's own product is used so the
// dispatch policy, not the catalog, decides what the buyer sees.
func productRef(ctx context.Context, cfg HandlerConfig, form validation.OrderForm, id int64) (orders.ProductRef, error) {
	p, err := cfg.Catalog.Lookup(ctx, id)
	switch {
	case err == nil:
		return orders.ProductRef{ID: p.ID, Name: p.Name, Price: p.Price}, nil
	case errors.Is(err, apperr.ErrNotFound):
		return orders.ProductRef{}, err
	}

	name := form.Normalized().ProductName
	if name == "" {
		name = "Producto #" + strconv.FormatInt(id, 10)
	}
	cfg.Logger.Warn("catalog lookup failed, using the posted product",
		zap.Int64("product_id", id),
		zap.String("product_name", name),
		zap.String("error_kind", apperr.Kind(err)),
		zap.Error(err))
	return orders.ProductRef{ID: id, Name: name}, nil
}
