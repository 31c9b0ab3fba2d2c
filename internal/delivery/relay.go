package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
	"github.com/imrishuroy/go-storefront-orderflow/internal/config"
	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
)

// NoComments fills the comments template variable when the buyer left none.
const NoComments = "Sin comentarios adicionales"

// orderDateLayout renders the submission time the way the merchant reads it.
const orderDateLayout = "02/01/2006 15:04"

// merchantZone is the merchant's local time (UTC-3, no DST).
var merchantZone = time.FixedZone("ART", -3*60*60)

// Relay sends a templated transactional email through the relay's REST API.
type Relay struct {
	cfg           config.RelayConfig
	merchantEmail string
	http          *http.Client
}

// NewRelay returns the relay channel, or an Unavailable channel when the
// relay identifiers are incomplete.
func NewRelay(cfg config.RelayConfig, merchantEmail string, httpClient *http.Client) Channel {
	if !cfg.Complete() {
		return NewUnavailable(orders.ChannelEmailRelay,
			apperr.Configuration("email relay: service id, template id, public key and endpoint are required"))
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Relay{cfg: cfg, merchantEmail: merchantEmail, http: httpClient}
}

func (r *Relay) Name() orders.Channel { return orders.ChannelEmailRelay }

type relayRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (r *Relay) Deliver(ctx context.Context, in orders.Intent) (Receipt, error) {
	const op = "email relay send"

	payload, err := json.Marshal(relayRequest{
		ServiceID:      r.cfg.ServiceID,
		TemplateID:     r.cfg.TemplateID,
		UserID:         r.cfg.PublicKey,
		TemplateParams: TemplateParams(in, r.merchantEmail),
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%s: marshal: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return Receipt{}, apperr.Network(op, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Receipt{}, &apperr.ServiceError{
			Op:     op,
			Status: resp.StatusCode,
			Body:   string(body),
			Detail: "relay rejected the message",
		}
	}
	return Receipt{Reference: in.RequestID, Message: strings.TrimSpace(string(body))}, nil
}

// TemplateParams is the fixed mapping of intent fields to template variables.
func TemplateParams(in orders.Intent, merchantEmail string) map[string]string {
	comments := in.Comments
	if strings.TrimSpace(comments) == "" {
		comments = NoComments
	}
	return map[string]string{
		"from_name":  in.BuyerName,
		"from_email": in.BuyerEmail,
		"phone":      in.BuyerPhone,
		"product":    in.ProductName,
		"quantity":   strconv.Itoa(in.Quantity),
		"comments":   comments,
		"order_date": in.SubmittedAt.In(merchantZone).Format(orderDateLayout),
		"request_id": in.RequestID,
		"to_email":   merchantEmail,
	}
}
