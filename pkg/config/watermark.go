package config

import (
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"path/filepath"
	"strings"
)

const (
	DefaultReportPath = "watermark_report.txt"
	DefaultLogLevel   = "info"
)

var (
	ErrUnknownChannel      = errors.New("unknown channel, expected one of red, green, blue")
	ErrUnknownFormat       = errors.New("unknown output format, expected one of png, bmp, tiff, jpeg")
	ErrUnknownCompression  = errors.New("unknown png compression, expected one of default, none, fast, best")
	ErrLossyFormatRejected = errors.New("lossy output formats destroy the watermark, allow them explicitly to continue")

	pngCompressionMapping = map[string]png.CompressionLevel{
		"default": png.DefaultCompression,
		"none":    png.NoCompression,
		"fast":    png.BestSpeed,
		"best":    png.BestCompression,
	}
)

// Channel identifies which colour channel of each pixel carries the watermark bit
type Channel byte

const (
	Red Channel = iota
	Green
	Blue
)

// Offset returns the position of the channel inside an RGBA pixel
func (c Channel) Offset() int {
	return int(c)
}

func (c Channel) Validate() error {
	if c > Blue {
		return fmt.Errorf("%w: %s", ErrUnknownChannel, c)
	}
	return nil
}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("channel(%d)", byte(c))
	}
}

func ParseChannel(name string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "red", "r":
		return Red, nil
	case "green", "g":
		return Green, nil
	case "blue", "b":
		return Blue, nil
	default:
		return Red, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}
}

// OutputFormat is the container used when persisting an encoded image
type OutputFormat string

const (
	PNG  OutputFormat = "png"
	BMP  OutputFormat = "bmp"
	TIFF OutputFormat = "tiff"
	JPEG OutputFormat = "jpeg"
)

// Lossy formats alter pixel values on save, which wipes out the least significant bits
func (f OutputFormat) Lossy() bool {
	return f == JPEG
}

func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "jpg", "jpeg":
		return JPEG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks the output format from the file extension, falling back to fallback when the extension is
// missing or unknown
func FormatFromPath(path string, fallback OutputFormat) OutputFormat {
	format, err := ParseOutputFormat(filepath.Ext(path))
	if err != nil {
		return fallback
	}
	return format
}

func ParsePngCompression(name string) (png.CompressionLevel, error) {
	level, found := pngCompressionMapping[strings.ToLower(name)]
	if !found {
		return png.DefaultCompression, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
	return level, nil
}

// WatermarkConfig holds every setting shared by the encoder, the decoder and the collaborators around them
type WatermarkConfig struct {
	Channel             Channel
	PngCompressionLevel png.CompressionLevel
	OutputFormat        OutputFormat
	AllowLossyOutput    bool

	// ReportPath is overwritten after every successful encode. Empty disables the file report
	ReportPath string
	// ReportDatabase, when set, keeps the last report in a sqlite database as well
	ReportDatabase string

	LogLevel slog.Level
}

func DefaultWatermarkConfig() WatermarkConfig {
	return WatermarkConfig{
		Channel:             Red,
		PngCompressionLevel: png.DefaultCompression,
		OutputFormat:        PNG,
		ReportPath:          DefaultReportPath,
		LogLevel:            slog.LevelInfo,
	}
}

func (c *WatermarkConfig) PopulateUnsetConfigVars() {
	if c.Channel > Blue {
		c.Channel = Red
	}
	if c.OutputFormat == "" {
		c.OutputFormat = PNG
	}
}

func (c WatermarkConfig) Validate() error {
	if err := c.Channel.Validate(); err != nil {
		return err
	}
	if _, err := ParseOutputFormat(string(c.OutputFormat)); err != nil {
		return err
	}
	if c.OutputFormat.Lossy() && !c.AllowLossyOutput {
		return fmt.Errorf("%w: %s", ErrLossyFormatRejected, c.OutputFormat)
	}
	return nil
}
