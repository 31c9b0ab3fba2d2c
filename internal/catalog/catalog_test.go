package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
	"github.com/imrishuroy/go-storefront-orderflow/internal/models"
)

type fakeSource struct {
	products   []models.Product
	categories []string
	err        error
	lastCat    string
	lastActive bool
}

func (f *fakeSource) ListProducts(ctx context.Context, category string, active bool) ([]models.Product, error) {
	f.lastCat, f.lastActive = category, active
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Product
	for _, p := range f.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, &apperr.ServiceError{Op: "get product", Status: 404}
}

func (f *fakeSource) ListCategories(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func seeded() *fakeSource {
	return &fakeSource{
		products: []models.Product{
			{ID: 1, Name: "Gorro Unicornio", Price: decimal.NewFromInt(2500), Category: "Gorros", Active: true},
			{ID: 2, Name: "Peluche Oso", Price: decimal.NewFromInt(3100), Category: "Juguetes", Active: true},
		},
		categories: []string{"Gorros", "Juguetes"},
	}
}

func TestListProducts_FiltersActiveByCategory(t *testing.T) {
	src := seeded()
	c := New(src, nil)

	got := c.ListProducts(context.Background(), "Gorros")
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected products %+v", got)
	}
	if !src.lastActive {
		t.Fatal("expected active-only query")
	}
}

func TestFailuresNeverEscape(t *testing.T) {
	failures := []error{
		apperr.Network("list products", errors.New("connection refused")),
		&apperr.ServiceError{Op: "list products", Status: 500, Body: "boom"},
	}
	for _, failure := range failures {
		c := New(&fakeSource{err: failure}, nil)

		if got := c.ListProducts(context.Background(), ""); got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
		if got := c.GetProduct(context.Background(), 1); got != nil {
			t.Fatalf("expected absent product, got %+v", got)
		}
		if got := c.ListCategories(context.Background()); got == nil || len(got) != 0 {
			t.Fatalf("expected empty categories, got %#v", got)
		}
	}
}

func TestGetProduct_AbsentWhenUnknown(t *testing.T) {
	c := New(seeded(), nil)
	if p := c.GetProduct(context.Background(), 42); p != nil {
		t.Fatalf("expected nil, got %+v", p)
	}
	if p := c.GetProduct(context.Background(), 2); p == nil || p.Name != "Peluche Oso" {
		t.Fatalf("unexpected product %+v", p)
	}
}

func TestLookup_TellsUnknownFromUnreachable(t *testing.T) {
	c := New(seeded(), nil)
	if _, err := c.Lookup(context.Background(), 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if p, err := c.Lookup(context.Background(), 1); err != nil || p.Name != "Gorro Unicornio" {
		t.Fatalf("unexpected %+v %v", p, err)
	}

	down := New(&fakeSource{err: apperr.Network("get product", errors.New("connection refused"))}, nil)
	_, err := down.Lookup(context.Background(), 1)
	if err == nil || errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected an unreachable error, got %v", err)
	}
	if !errors.Is(err, apperr.ErrNetwork) {
		t.Fatalf("expected the network cause to be kept, got %v", err)
	}
}

func TestPage_FetchesBoth(t *testing.T) {
	c := New(seeded(), nil)
	page := c.Page(context.Background(), "")
	if len(page.Products) != 2 || len(page.Categories) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
}
