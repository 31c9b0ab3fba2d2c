package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
	"github.com/imrishuroy/go-storefront-orderflow/internal/models"
)

// OrderRequest is the body of POST /pedidos: the order intent plus the
// merchant destination address.
type OrderRequest struct {
	RequestID     string    `json:"request_id"`
	Name          string    `json:"nombre"`
	Email         string    `json:"email"`
	Phone         string    `json:"telefono"`
	ProductID     int64     `json:"producto_id"`
	ProductName   string    `json:"producto_nombre"`
	Quantity      int       `json:"cantidad"`
	Comments      string    `json:"comentarios"`
	SubmittedAt   time.Time `json:"fecha_pedido"`
	MerchantEmail string    `json:"email_destino"`
}

// OrderResponse is the body returned by POST /pedidos.
type OrderResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"mensaje"`
}

// CreateOrder calls POST /pedidos. A 2xx answer without an order id is
// treated as malformed.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (OrderResponse, error) {
	var out OrderResponse
	if err := c.postJSON(ctx, "create order", "/pedidos", req, &out); err != nil {
		return OrderResponse{}, err
	}
	if out.ID == 0 {
		return OrderResponse{}, &apperr.ServiceError{
			Op:     "create order",
			Status: http.StatusOK,
			Detail: "response carries no order id",
		}
	}
	return out, nil
}

// ListOrders calls GET /pedidos and unwraps {"pedidos": [...]}.
func (c *Client) ListOrders(ctx context.Context) ([]models.OrderRecord, error) {
	var out struct {
		Orders []models.OrderRecord `json:"pedidos"`
	}
	if err := c.getJSON(ctx, "list orders", "/pedidos", &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}
