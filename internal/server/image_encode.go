package server

import (
	"bytes"
	"fmt"
	"io"
	"lsbmark/api"
	"lsbmark/api/lsbmark/EncodeImage"
	"lsbmark/internal/imageio"
	"lsbmark/internal/logging"
	"lsbmark/pkg/config"
	"lsbmark/pkg/model"
	"lsbmark/pkg/watermark"
	"net/http"

	"github.com/gin-gonic/gin"
	flatbuffers "github.com/google/flatbuffers/go"
)

const (
	octetStream = "application/octet-stream"
)

// EncodeImageHandler godoc
//
// @Summary Encode a text watermark into the supplied image
// @Description This endpoint hides the supplied text in the image and returns the watermarked image. JSON requests get JSON responses, application/octet-stream requests are read and answered as flatbuffers. All errors are returned as JSON
// @Tags image
// @Accept json,octet-stream
// @Produce json,octet-stream
// @Param requestBody body api.EncodeImageRequest true "Body with the image to watermark, the text to hide and the encoding configuration"
// @Success 200 {object} api.EncodeImageResponse
// @Failure 400 {object} api.Error
// @Failure 422 {object} api.Error
// @Failure 500 {object} api.Error
// @Router /encode/image [post]
func EncodeImageHandler(defaults config.WatermarkConfig) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.ContentType() == octetStream {
			encodeFlatbuffersRequest(ctx, defaults)
			return
		}
		encodeJSONRequest(ctx, defaults)
	}
}

func encodeJSONRequest(ctx *gin.Context, defaults config.WatermarkConfig) {
	var requestBody api.EncodeImageRequest

	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing image encode request")

	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		logger.WithError(err).Error("Error decoding request body")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errRequestBodyDecode)
		return
	}

	wConfig, err := requestConfig(defaults, requestBody)
	if err != nil {
		logger.WithError(err).Error("Invalid encoding configuration")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Code: errInvalidConfig.Code, Error: err.Error()})
		return
	}

	encodedImage, stats, ok := encodeImage(ctx, logger, requestBody.ImageToEncode, requestBody.Text, wConfig)
	if !ok {
		return
	}

	ctx.Header(PSNRHeader, formatPSNR(stats.PSNR))
	ctx.JSON(http.StatusOK, api.EncodeImageResponse{
		EncodedImage: encodedImage,
		Stats:        toHumanizedEncodeStats(stats),
	})
}

func encodeFlatbuffersRequest(ctx *gin.Context, defaults config.WatermarkConfig) {
	logger := logging.BuildLoggerFromCtx(ctx)
	logger.Debug("Processing flatbuffers image encode request")

	requestBody, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		logger.WithError(err).Error("Error reading request body")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errRequestBodyDecode)
		return
	}

	encodeImageRequest, err := readEncodeImageRequest(requestBody)
	if err != nil {
		logger.WithError(err).Error("Error decoding request body")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errRequestBodyDecode)
		return
	}

	wConfig := defaults
	wConfig.Channel = config.Channel(encodeImageRequest.Channel())
	if err = wConfig.Validate(); err != nil {
		logger.WithError(err).Error("Invalid encoding configuration")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Code: errInvalidConfig.Code, Error: err.Error()})
		return
	}

	imageToEncode := encodeImageRequest.ImageToEncodeBytes()
	encodedImage, stats, ok := encodeImage(ctx, logger, imageToEncode, string(encodeImageRequest.Text()), wConfig)
	if !ok {
		return
	}

	// Vectors have to be written before the table that references them is started
	fbResponseBuilder := flatbuffers.NewBuilder(len(encodedImage) + 64)
	encodedImageOffset := fbResponseBuilder.CreateByteVector(encodedImage)
	EncodeImage.ImageEncodeResponseStart(fbResponseBuilder)
	EncodeImage.ImageEncodeResponseAddEncodedImage(fbResponseBuilder, encodedImageOffset)
	EncodeImage.ImageEncodeResponseAddPayloadBits(fbResponseBuilder, int32(stats.PayloadBits))
	EncodeImage.FinishImageEncodeResponseBuffer(fbResponseBuilder, EncodeImage.ImageEncodeResponseEnd(fbResponseBuilder))

	ctx.Header(PSNRHeader, formatPSNR(stats.PSNR))
	ctx.Data(http.StatusOK, octetStream, fbResponseBuilder.FinishedBytes())
}

// readEncodeImageRequest reads every field once up front. Offsets in a corrupt buffer make the generated accessors
// panic, and this keeps that panic inside the request parsing step
func readEncodeImageRequest(body []byte) (req *EncodeImage.ImageEncodeRequest, err error) {
	if len(body) < flatbuffers.SizeUOffsetT {
		return nil, errMalformedFlatbuffer
	}

	defer func() {
		if r := recover(); r != nil {
			req = nil
			err = fmt.Errorf("%w: %v", errMalformedFlatbuffer, r)
		}
	}()

	req = EncodeImage.GetRootAsImageEncodeRequest(body, 0)
	if req.ImageToEncodeLength() == 0 {
		return nil, fmt.Errorf("%w: image_to_encode is empty", errMalformedFlatbuffer)
	}
	_ = req.ImageToEncodeBytes()
	_ = req.Text()
	_ = req.Channel()
	return req, nil
}

// encodeImage runs the codec over a raw image and writes the response on failure. The returned flag is false when the
// request has already been aborted
func encodeImage(ctx *gin.Context, logger *logging.Logger, rawImage []byte, text string,
	wConfig config.WatermarkConfig) ([]byte, model.EncodeStats, bool) {

	imageToEncode, _, err := imageio.Decode(bytes.NewReader(rawImage))
	if err != nil {
		logger.WithError(err).Error("Error decoding request image")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errInvalidImage)
		return nil, model.EncodeStats{}, false
	}

	imageEncoder, err := watermark.NewImageEncoder(wConfig)
	if err != nil {
		logger.WithError(err).Error("Error setting up encoder")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, api.Error{Code: errInvalidConfig.Code, Error: err.Error()})
		return nil, model.EncodeStats{}, false
	}

	encoded, err := imageEncoder.Encode(imageToEncode, text)
	if err != nil {
		logger.WithError(err).Warn("Error encoding text into image")
		ctx.AbortWithStatusJSON(encodeErrorResponse(err))
		return nil, model.EncodeStats{}, false
	}

	// pre allocate with size of original, since it should be similar
	encodedImageBuffer := bytes.NewBuffer(make([]byte, 0, len(rawImage)))
	if err = imageEncoder.WriteEncoded(encodedImageBuffer, encoded); err != nil {
		logger.WithError(err).Error("Error writing encoded image")
		ctx.AbortWithStatusJSON(encodeErrorResponse(err))
		return nil, model.EncodeStats{}, false
	}

	logger.With("stats", toHumanizedEncodeStats(imageEncoder.Stats())).Info("Image encoding was successful")
	return encodedImageBuffer.Bytes(), imageEncoder.Stats(), true
}

// requestConfig overlays the optional per request settings onto the server defaults
func requestConfig(defaults config.WatermarkConfig, request api.EncodeImageRequest) (config.WatermarkConfig, error) {
	wConfig := defaults

	if request.Channel != "" {
		channel, err := config.ParseChannel(request.Channel)
		if err != nil {
			return wConfig, err
		}
		wConfig.Channel = channel
	}
	if request.OutputFormat != "" {
		format, err := config.ParseOutputFormat(request.OutputFormat)
		if err != nil {
			return wConfig, err
		}
		wConfig.OutputFormat = format
	}
	if request.PngCompression != "" {
		level, err := config.ParsePngCompression(request.PngCompression)
		if err != nil {
			return wConfig, err
		}
		wConfig.PngCompressionLevel = level
	}

	return wConfig, wConfig.Validate()
}
