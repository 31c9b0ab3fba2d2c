package delivery

import (
	"context"
	"strconv"

	"github.com/imrishuroy/go-storefront-orderflow/internal/backend"
	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
)

// OrderCreator is the backend call the channel needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req backend.OrderRequest) (backend.OrderResponse, error)
}

// Backend posts the intent to the order-creation endpoint.
type Backend struct {
	api           OrderCreator
	merchantEmail string
}

func NewBackend(api OrderCreator, merchantEmail string) *Backend {
	return &Backend{api: api, merchantEmail: merchantEmail}
}

func (b *Backend) Name() orders.Channel { return orders.ChannelBackend }

func (b *Backend) Deliver(ctx context.Context, in orders.Intent) (Receipt, error) {
	resp, err := b.api.CreateOrder(ctx, OrderRequest(in, b.merchantEmail))
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{
		Reference: strconv.FormatInt(resp.ID, 10),
		Message:   resp.Message,
	}, nil
}

// OrderRequest maps an intent onto the /pedidos body.
func OrderRequest(in orders.Intent, merchantEmail string) backend.OrderRequest {
	return backend.OrderRequest{
		RequestID:     in.RequestID,
		Name:          in.BuyerName,
		Email:         in.BuyerEmail,
		Phone:         in.BuyerPhone,
		ProductID:     in.ProductID,
		ProductName:   in.ProductName,
		Quantity:      in.Quantity,
		Comments:      in.Comments,
		SubmittedAt:   in.SubmittedAt,
		MerchantEmail: merchantEmail,
	}
}
