package server

import (
	"lsbmark/api"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler godoc
//
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} api.HealthResponse
// @Router /health [get]
func HealthHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, api.HealthResponse{Status: "ok", Version: Version})
}
