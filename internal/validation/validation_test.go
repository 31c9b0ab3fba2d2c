package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
)

func validForm() OrderForm {
	return OrderForm{
		ProductID: "1",
		Name:      "Ana",
		Email:     "ana@x.com",
		Phone:     "1122334455",
		Quantity:  "2",
	}
}

func TestOrderForm_Valid(t *testing.T) {
	v := New()

	if errs := Validate(v, validForm()); errs != nil {
		t.Fatalf("expected valid, got %v", errs)
	}
}

func TestOrderForm_InvalidEmail(t *testing.T) {
	v := New()

	form := validForm()
	form.Email = "not-an-email"

	errs := Validate(v, form)
	if errs == nil {
		t.Fatal("expected validation error for email, got nil")
	}
	if _, ok := errs["email"]; !ok {
		t.Fatalf("expected email field error, got %v", errs)
	}
	if !errors.Is(errs, apperr.ErrValidation) {
		t.Fatal("expected field errors to match ErrValidation")
	}
}

func TestOrderForm_MissingFields(t *testing.T) {
	v := New()

	errs := Validate(v, OrderForm{})
	if errs == nil {
		t.Fatal("expected validation errors for missing required fields, got nil")
	}
	for _, field := range []string{"nombre", "email", "telefono"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestOrderForm_BlankName(t *testing.T) {
	v := New()

	form := validForm()
	form.Name = "   "

	errs := Validate(v, form)
	if _, ok := errs["nombre"]; !ok {
		t.Fatalf("expected nombre error for whitespace-only name, got %v", errs)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	v := New()
	forms := []OrderForm{validForm(), {}, {Name: "Ana", Email: "ana@x", Phone: "1"}}

	for _, f := range forms {
		first := Validate(v, f) == nil
		second := Validate(v, f) == nil
		if first != second {
			t.Fatalf("validation not stable for %+v", f)
		}
	}
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ana@x.com", true},
		{"ventas@mayorista.com.ar", true},
		{"not-an-email", false},
		{"ana@x", false},
		{"ana@.com", false},
		{"ana @x.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsEmail(tt.in); got != tt.want {
			t.Errorf("IsEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCoerceQuantity(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"1", 1},
		{"2", 2},
		{" 10 ", 10},
		{"15", 1},
		{"0", 1},
		{"-3", 1},
		{"", 1},
		{"dos", 1},
		{"2.5", 1},
	}
	for _, tt := range tests {
		if got := CoerceQuantity(tt.raw); got != tt.want {
			t.Errorf("CoerceQuantity(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestQuantityOptions(t *testing.T) {
	opts := QuantityOptions()
	if len(opts) != 10 || opts[0] != 1 || opts[9] != 10 {
		t.Fatalf("unexpected options %v", opts)
	}
}

func TestNormalized_KeepsComments(t *testing.T) {
	f := OrderForm{Name: "  Ana ", Comments: "  talle 4  "}.Normalized()
	if f.Name != "Ana" || f.Comments != "  talle 4  " {
		t.Fatalf("unexpected normalized form %+v", f)
	}
}

func TestBindForm_URLEncoded(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := url.Values{
		"producto_id": {"1"},
		"nombre":      {"Ana"},
		"email":       {"ana@x.com"},
		"telefono":    {"1122334455"},
		"cantidad":    {"15"},
	}.Encode()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form, err := BindForm(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Quantity != "15" || form.Email != "ana@x.com" {
		t.Fatalf("unexpected form %+v", form)
	}
	if CoerceQuantity(form.Quantity) != 1 {
		t.Fatal("expected out-of-menu quantity to coerce to 1")
	}
}

func TestBindForm_MalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	if _, err := BindForm(c); err == nil {
		t.Fatal("expected bind error, got nil")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
