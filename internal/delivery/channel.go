// Package delivery holds the independent sinks an order intent is
// dispatched to. Channels never retry; a failure is terminal for the call.
package delivery

import (
	"context"

	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
)

// Channel delivers an Intent to one external sink.
type Channel interface {
	Name() orders.Channel
	Deliver(ctx context.Context, in orders.Intent) (Receipt, error)
}

// Receipt is what a channel reports back on success.
type Receipt struct {
	Reference string
	Message   string
}

// Unavailable is a channel whose configuration was rejected at startup.
// Every call fails with the same error for the life of the process.
type Unavailable struct {
	channel orders.Channel
	err     error
}

func NewUnavailable(ch orders.Channel, err error) *Unavailable {
	return &Unavailable{channel: ch, err: err}
}

func (u *Unavailable) Name() orders.Channel { return u.channel }

func (u *Unavailable) Deliver(context.Context, orders.Intent) (Receipt, error) {
	return Receipt{}, u.err
}
