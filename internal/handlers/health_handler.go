package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func healthHandler(cfg HandlerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ready := cfg.Ready == nil || cfg.Ready.Ready()
		status := "ok"
		if !ready {
			status = "starting"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"ready":   ready,
			"backend": cfg.Admin != nil && cfg.Admin.Health(c.Request.Context()),
		})
	}
}
