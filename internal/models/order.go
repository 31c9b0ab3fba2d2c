package models

// OrderRecord is an order as listed by GET /pedidos (internal use).
type OrderRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"nombre"`
	Phone       string `json:"telefono"`
	ProductName string `json:"producto_nombre"`
	Quantity    int    `json:"cantidad"`
	Comments    string `json:"comentarios"`
	OrderedAt   string `json:"fecha_pedido"`
	State       string `json:"estado"`
}
