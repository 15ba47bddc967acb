package server

import (
	"bytes"
	"image"
	"lsbmark/api"
	"lsbmark/internal/imageio"
	"lsbmark/internal/logging"
	"lsbmark/pkg/watermark"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CapacityHandler godoc
//
// @Summary Compute the watermark capacity of an image
// @Description Reports how many bits the supplied image can carry, and whether the optional text would fit
// @Tags image
// @Accept json
// @Produce json
// @Param requestBody body api.CapacityRequest true "Body with the image to inspect and an optional text"
// @Success 200 {object} api.CapacityResponse
// @Failure 400 {object} api.Error
// @Router /capacity/image [post]
func CapacityHandler(ctx *gin.Context) {
	var requestBody api.CapacityRequest

	logger := logging.BuildLoggerFromCtx(ctx)

	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		logger.WithError(err).Error("Error decoding request body")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errRequestBodyDecode)
		return
	}

	// Only the header is needed to know the dimensions
	imageConfig, _, err := imageio.ReadConfig(bytes.NewReader(requestBody.Image))
	if err != nil {
		logger.WithError(err).Error("Error decoding request image")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidImage)
		return
	}

	bounds := image.Rect(0, 0, imageConfig.Width, imageConfig.Height)
	response := api.CapacityResponse{
		Width:         imageConfig.Width,
		Height:        imageConfig.Height,
		CapacityBits:  watermark.Capacity(bounds),
		MaxTextLength: watermark.MaxTextLength(bounds),
	}

	required, err := watermark.RequiredBits(requestBody.Text)
	if err != nil {
		logger.WithError(err).Warn("Text cannot be encoded")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidText)
		return
	}
	response.RequiredBits = required
	response.Fits = required <= response.CapacityBits

	ctx.JSON(http.StatusOK, response)
}
