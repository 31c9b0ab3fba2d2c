package models

import "github.com/shopspring/decimal"

// Product is a catalog entry as served by the product/order API.
// The catalog service owns it; the storefront only reads it.
type Product struct {
	ID                   int64               `json:"id"`
	Name                 string              `json:"nombre"`
	Price                decimal.Decimal     `json:"precio"`
	Description          string              `json:"descripcion"`
	ImageURL             string              `json:"imagen_url"`
	Category             string              `json:"categoria"`
	Stock                *int                `json:"stock,omitempty"`
	WholesalePrice       decimal.NullDecimal `json:"precio_mayorista"`
	WholesaleMinQuantity *int                `json:"minimo_mayorista,omitempty"`
	Active               bool                `json:"activo"`
}

// ProductCreate is the admin payload for POST /productos.
type ProductCreate struct {
	Name                 string              `json:"nombre"`
	Price                decimal.Decimal     `json:"precio"`
	Description          string              `json:"descripcion"`
	ImageURL             string              `json:"imagen_url"`
	Category             string              `json:"categoria"`
	Stock                *int                `json:"stock,omitempty"`
	WholesalePrice       decimal.NullDecimal `json:"precio_mayorista"`
	WholesaleMinQuantity *int                `json:"minimo_mayorista,omitempty"`
	Active               *bool               `json:"activo,omitempty"`
}

// ImageUpload is the response of POST /upload-image.
type ImageUpload struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Message  string `json:"message"`
}
