package orders

import "fmt"

// Buyer-facing copy.
const (
	MessageSent           = "¡Pedido enviado correctamente!"
	MessageSentWithFollow = "¡Pedido enviado correctamente! Nos contactaremos por WhatsApp para confirmar tu pedido."
	MessageDispatchFailed = "No pudimos enviar tu pedido. Por favor intentá nuevamente en unos minutos."
	MessageInvalidForm    = "Revisá los datos del formulario."
	MessageBusy           = "Tu pedido se está enviando, esperá un momento."
	MessageNotReady       = "La tienda se está iniciando, intentá nuevamente en unos segundos."
	MessageUnknownProduct = "El producto seleccionado no está disponible."
)

// SimulatedMessage is reported when the backend could not be reached and
// the soft-fail policy still confirms the order to the buyer.
func SimulatedMessage(i Intent) string {
	return fmt.Sprintf("¡Pedido simulado enviado! Producto: %s, Cantidad: %d, Cliente: %s",
		i.ProductName, i.Quantity, i.BuyerName)
}
