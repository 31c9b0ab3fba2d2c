package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-storefront-orderflow/internal/validation"
)

func registerCatalogRoutes(g *gin.RouterGroup, cfg HandlerConfig) {
	g.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, cfg.Catalog.ListProducts(c.Request.Context(), c.Query("category")))
	})

	g.GET("/products/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			badRequest(c, "invalid_product_id")
			return
		}
		p := cfg.Catalog.GetProduct(c.Request.Context(), id)
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusOK, p)
	})

	g.GET("/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": cfg.Catalog.ListCategories(c.Request.Context())})
	})

	// The shop view renders everything it needs from one call, including
	// the quantity menu of the order form.
	g.GET("/catalog", func(c *gin.Context) {
		page := cfg.Catalog.Page(c.Request.Context(), c.Query("category"))
		c.JSON(http.StatusOK, gin.H{
			"products":   page.Products,
			"categories": page.Categories,
			"quantities": validation.QuantityOptions(),
		})
	})
}
