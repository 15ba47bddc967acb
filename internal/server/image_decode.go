package server

import (
	"bytes"
	"lsbmark/api"
	"lsbmark/internal/imageio"
	"lsbmark/internal/logging"
	"lsbmark/pkg/config"
	"lsbmark/pkg/model"
	"lsbmark/pkg/watermark"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DecodeImageHandler godoc
//
// @Summary Decode a text watermark from an image
// @Description This endpoint looks for a watermark in the supplied image. An image without a watermark is not an error, the response simply has found set to false
// @Tags image
// @Accept json
// @Produce json
// @Param requestBody body api.DecodeImageRequest true "Body with image to decode"
// @Success 200 {object} api.DecodeImageResponse
// @Failure 400 {object} api.Error
// @Router /decode/image [post]
func DecodeImageHandler(defaults config.WatermarkConfig) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var requestBody api.DecodeImageRequest

		logger := logging.BuildLoggerFromCtx(ctx)
		logger.Debug("Processing image decode request")

		if err := ctx.ShouldBindJSON(&requestBody); err != nil {
			logger.WithError(err).Error("Error decoding request body")
			ctx.AbortWithStatusJSON(http.StatusBadRequest, errRequestBodyDecode)
			return
		}

		wConfig := defaults
		if requestBody.Channel != "" {
			channel, err := config.ParseChannel(requestBody.Channel)
			if err != nil {
				logger.WithError(err).Error("Invalid decoding configuration")
				ctx.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Code: errInvalidConfig.Code, Error: err.Error()})
				return
			}
			wConfig.Channel = channel
		}

		imageToDecode, _, err := imageio.Decode(bytes.NewReader(requestBody.ImageToDecode))
		if err != nil {
			logger.WithError(err).Error("Error decoding request image")
			ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidImage)
			return
		}

		imageDecoder := watermark.NewImageDecoder(wConfig)
		result := imageDecoder.Decode(imageToDecode)

		logger.With("stats", toHumanizedDecodeStats(imageDecoder.Stats()), "found", result.Found).
			Info("Image decoding was successful")

		response := api.DecodeImageResponse{
			Found:       result.Found,
			Text:        result.Text,
			PayloadBits: result.PayloadBits,
			Stats:       toHumanizedDecodeStats(imageDecoder.Stats()),
		}
		if !result.Found {
			response.Message = model.NotFoundMessage
		}
		ctx.JSON(http.StatusOK, response)
	}
}
