package validation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BindForm binds an order form posted as urlencoded, multipart or JSON.
// On a malformed body it writes a 400 and returns the error so the handler
// can short-circuit. Field rules are applied later by the workflow.
func BindForm(c *gin.Context) (OrderForm, error) {
	var form OrderForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"error":   "invalid_request_body",
			"message": "No pudimos leer el formulario",
		})
		return OrderForm{}, err
	}
	return form, nil
}
