package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
	"github.com/imrishuroy/go-storefront-orderflow/internal/backend"
	"github.com/imrishuroy/go-storefront-orderflow/internal/config"
	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
)

func testIntent() orders.Intent {
	return orders.Intent{
		RequestID:    "req-1",
		BuyerName:    "Ana",
		BuyerEmail:   "ana@x.com",
		BuyerPhone:   "123",
		ProductID:    1,
		ProductName:  "Gorro Unicornio",
		ProductPrice: decimal.NewFromInt(2500),
		Quantity:     2,
		SubmittedAt:  time.Date(2025, 5, 3, 18, 30, 0, 0, time.UTC),
	}
}

type fakeCreator struct {
	got  backend.OrderRequest
	resp backend.OrderResponse
	err  error
}

func (f *fakeCreator) CreateOrder(_ context.Context, req backend.OrderRequest) (backend.OrderResponse, error) {
	f.got = req
	return f.resp, f.err
}

func TestBackend_DeliverMapsIntent(t *testing.T) {
	api := &fakeCreator{resp: backend.OrderResponse{ID: 42, Message: "Pedido creado"}}
	ch := NewBackend(api, "shop@x.com")

	rc, err := ch.Deliver(context.Background(), testIntent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rc.Reference != "42" || rc.Message != "Pedido creado" {
		t.Fatalf("unexpected receipt %+v", rc)
	}
	if api.got.RequestID != "req-1" || api.got.MerchantEmail != "shop@x.com" || api.got.Quantity != 2 || api.got.ProductID != 1 {
		t.Fatalf("unexpected request %+v", api.got)
	}
	if ch.Name() != orders.ChannelBackend {
		t.Fatalf("unexpected channel name %q", ch.Name())
	}
}

func TestBackend_DeliverPropagatesError(t *testing.T) {
	api := &fakeCreator{err: apperr.Network("create order", errors.New("refused"))}
	_, err := NewBackend(api, "").Deliver(context.Background(), testIntent())
	if !errors.Is(err, apperr.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestTemplateParams(t *testing.T) {
	p := TemplateParams(testIntent(), "shop@x.com")

	want := map[string]string{
		"from_name":  "Ana",
		"from_email": "ana@x.com",
		"phone":      "123",
		"product":    "Gorro Unicornio",
		"quantity":   "2",
		"comments":   NoComments,
		"order_date": "03/05/2025 15:30",
		"request_id": "req-1",
		"to_email":   "shop@x.com",
	}
	for k, v := range want {
		if p[k] != v {
			t.Fatalf("param %s: expected %q, got %q", k, v, p[k])
		}
	}

	in := testIntent()
	in.Comments = "talle M"
	if got := TemplateParams(in, "")["comments"]; got != "talle M" {
		t.Fatalf("expected comments to pass through, got %q", got)
	}
}

func TestRelay_Deliver(t *testing.T) {
	var body relayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		io.WriteString(w, "OK")
	}))
	defer srv.Close()

	ch := NewRelay(config.RelayConfig{
		ServiceID: "svc", TemplateID: "tpl", PublicKey: "pk", Endpoint: srv.URL,
	}, "shop@x.com", nil)

	rc, err := ch.Deliver(context.Background(), testIntent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rc.Message != "OK" || rc.Reference != "req-1" {
		t.Fatalf("unexpected receipt %+v", rc)
	}
	if body.ServiceID != "svc" || body.TemplateID != "tpl" || body.UserID != "pk" {
		t.Fatalf("unexpected identifiers %+v", body)
	}
	if body.TemplateParams["product"] != "Gorro Unicornio" {
		t.Fatalf("unexpected params %+v", body.TemplateParams)
	}
}

func TestRelay_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "The public key is invalid")
	}))
	defer srv.Close()

	ch := NewRelay(config.RelayConfig{
		ServiceID: "svc", TemplateID: "tpl", PublicKey: "bad", Endpoint: srv.URL,
	}, "", srv.Client())

	_, err := ch.Deliver(context.Background(), testIntent())
	var se *apperr.ServiceError
	if !errors.As(err, &se) || se.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 ServiceError, got %v", err)
	}
}

func TestRelay_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	ch := NewRelay(config.RelayConfig{
		ServiceID: "svc", TemplateID: "tpl", PublicKey: "pk", Endpoint: url,
	}, "", nil)

	_, err := ch.Deliver(context.Background(), testIntent())
	if !errors.Is(err, apperr.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestRelay_IncompleteConfigIsUnavailable(t *testing.T) {
	ch := NewRelay(config.RelayConfig{ServiceID: "svc", Endpoint: "https://relay"}, "", nil)
	if _, ok := ch.(*Unavailable); !ok {
		t.Fatalf("expected Unavailable, got %T", ch)
	}
	if ch.Name() != orders.ChannelEmailRelay {
		t.Fatalf("unexpected name %q", ch.Name())
	}
	for i := 0; i < 2; i++ {
		if _, err := ch.Deliver(context.Background(), testIntent()); !errors.Is(err, apperr.ErrConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	}
}
