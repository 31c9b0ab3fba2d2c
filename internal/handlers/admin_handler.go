package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront-orderflow/internal/models"
)

// maxImageSize bounds an uploaded product image.
const maxImageSize = 10 << 20

func registerAdminRoutes(g *gin.RouterGroup, cfg HandlerConfig) {
	g.POST("/products", func(c *gin.Context) {
		var req models.ProductCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_request_body")
			return
		}
		if req.Name == "" || !req.Price.IsPositive() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation", "detail": "nombre and a positive precio are required"})
			return
		}
		// new products are listed unless the admin says otherwise
		if req.Active == nil {
			active := true
			req.Active = &active
		}
		p, err := cfg.Admin.CreateProduct(c.Request.Context(), req)
		if err != nil {
			adminError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	})

	g.GET("/orders", func(c *gin.Context) {
		list, err := cfg.Admin.ListOrders(c.Request.Context())
		if err != nil {
			adminError(c, err)
			return
		}
		if list == nil {
			list = []models.OrderRecord{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	})

	g.POST("/images", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize)
		fh, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "missing_file")
			return
		}
		f, err := fh.Open()
		if err != nil {
			badRequest(c, "unreadable_file")
			return
		}
		defer f.Close()

		out, err := cfg.Admin.UploadImage(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), f)
		if err != nil {
			adminError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
}
