package server

import (
	"context"
	"errors"
	"fmt"
	"lsbmark/internal/logging"
	"lsbmark/pkg/config"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "lsbmark/docs"
)

const (
	RFC3339Millis = "2006-01-02T15:04:05.000Z07:00"
	Version       = "1.0"

	RequestIDHeader = "X-Request-ID"
	PSNRHeader      = "X-Watermark-PSNR"

	shutdownTimeout = 10 * time.Second
)

type Options struct {
	Port        string
	CORSOrigins []string
	// Config provides the defaults for every request, individual requests may override the channel, the output
	// format and the png compression
	Config config.WatermarkConfig
}

// NewRouter godoc
// @title lsbmark API
// @version 1.0
// @description An API to hide and recover text watermarks in images
// @BasePath /api/v1
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), gin.LoggerWithConfig(gin.LoggerConfig{Formatter: logFormatter}), gin.Recovery())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.GET("/health", HealthHandler)
	v1.POST("/encode/image", EncodeImageHandler(opts.Config))
	v1.POST("/decode/image", DecodeImageHandler(opts.Config))
	v1.POST("/capacity/image", CapacityHandler)

	return r
}

// StartServer serves the API until ctx is cancelled, then drains in-flight requests
func StartServer(ctx context.Context, opts Options) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", opts.Port),
		Handler: NewRouter(opts),
	}

	logger := logging.BuildLogger()
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", RequestIDHeader}
	c.ExposeHeaders = []string{RequestIDHeader, PSNRHeader}
	return c
}

// requestID reuses the caller's request id when there is one so logs can be correlated across services
func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(logging.RequestIDKey, id)
		ctx.Header(RequestIDHeader, id)
		ctx.Next()
	}
}

func logFormatter(param gin.LogFormatterParams) string {
	if param.Latency > time.Minute {
		param.Latency = param.Latency.Truncate(time.Second)
	}

	requestID, _ := param.Keys[logging.RequestIDKey].(string)
	return fmt.Sprintf("{\"timestamp\":\"%v\", \"status_code\": \"%d\", \"latency\": \"%v\", \"latency_raw\": \"%d\", \"request_size\": \"%s\", \"request_size_raw\": \"%d\", \"client_ip\":\"%s\", \"method\": \"%s\", \"path\": %q, \"request_id\": \"%s\", \"error\": %q}\n",
		param.TimeStamp.Format(RFC3339Millis),
		param.StatusCode,
		param.Latency,
		param.Latency,
		humanize.Bytes(uint64(param.BodySize)),
		param.BodySize,
		param.ClientIP,
		param.Method,
		param.Path,
		requestID,
		param.ErrorMessage,
	)
}
