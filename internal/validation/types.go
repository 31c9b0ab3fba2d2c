package validation

import (
	"sort"
	"strings"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
)

// Quantity menu offered by the order form.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// OrderForm is the raw order form as posted by the storefront. Every field
// arrives as text; Quantity is coerced rather than validated.
//
// ProductName is the name the form was opened with and is only used when
// the catalog cannot be reached. RequestID is echoed back by a form that
// retries a previous attempt.
type OrderForm struct {
	ProductID   string `form:"producto_id" json:"producto_id"`
	ProductName string `form:"producto_nombre" json:"producto_nombre"`
	Name        string `form:"nombre" json:"nombre" validate:"required"`
	Email       string `form:"email" json:"email" validate:"required,emailshape"`
	Phone       string `form:"telefono" json:"telefono" validate:"required"`
	Quantity    string `form:"cantidad" json:"cantidad"`
	Comments    string `form:"comentarios" json:"comentarios"`
	RequestID   string `form:"request_id" json:"request_id"`
}

// Normalized trims the identifying fields. Comments are kept as typed.
func (f OrderForm) Normalized() OrderForm {
	f.ProductID = strings.TrimSpace(f.ProductID)
	f.ProductName = strings.TrimSpace(f.ProductName)
	f.RequestID = strings.TrimSpace(f.RequestID)
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Quantity = strings.TrimSpace(f.Quantity)
	return f
}

// FieldErrors maps a form field name to a buyer-facing message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid fields: " + strings.Join(keys, ", ")
}

func (fe FieldErrors) Unwrap() error { return apperr.ErrValidation }
