package watermark

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"lsbmark/internal/bits"
	"lsbmark/pkg/config"
	"lsbmark/pkg/model"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const (
	// Only used when lossy output has been explicitly allowed
	lossyOutputQuality = 100
)

type Encoder struct {
	config config.WatermarkConfig
	stats  model.EncodeStats
}

// NewImageEncoder rejects a channel outside red, green and blue instead of falling back to red
func NewImageEncoder(wConfig config.WatermarkConfig) (*Encoder, error) {
	if err := wConfig.Channel.Validate(); err != nil {
		return nil, err
	}
	wConfig.PopulateUnsetConfigVars()
	if _, err := config.ParseOutputFormat(string(wConfig.OutputFormat)); err != nil {
		return nil, err
	}

	return &Encoder{
		config: wConfig,
	}, nil
}

func (e *Encoder) Stats() model.EncodeStats {
	return e.stats
}

// Encode returns a copy of img with text hidden in the least significant bit of the configured channel. The capacity
// check happens before anything is copied, so a payload that does not fit leaves no trace
func (e *Encoder) Encode(img image.Image, text string) (*image.RGBA, error) {
	e.stats = model.EncodeStats{}

	setupStart := time.Now()
	framed, err := FrameText(text)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	available := Capacity(bounds)
	if len(framed) > available {
		return nil, &CapacityError{Required: len(framed), Available: available}
	}

	encoded := ToRGB(img)
	e.stats.Setup = time.Since(setupStart)
	e.stats.PayloadBits = len(framed)
	e.stats.CapacityBits = available

	e.embed(encoded, framed)
	e.stats.PSNR = PSNR(img, encoded)
	return encoded, nil
}

func (e *Encoder) embed(img *image.RGBA, framed bits.Stream) {
	encodeStart := time.Now()
	defer func() {
		e.stats.DataEncoding = time.Since(encodeStart)
	}()

	br := bits.NewBitReader(framed)
	channelOffset := e.config.Channel.Offset()
	Scan(img.Bounds(), func(x, y int) bool {
		bit, ok := br.ReadBit()
		if !ok {
			return false
		}
		// Clear the least significant bit and then set it to the payload bit
		subPixel := img.PixOffset(x, y) + channelOffset
		img.Pix[subPixel] = img.Pix[subPixel]&^1 | bit
		return br.BitsLeftToRead() > 0
	})
}

// WriteEncoded serialises an encoded image in the configured output format
func (e *Encoder) WriteEncoded(output io.Writer, img *image.RGBA) error {
	imageEncodeStart := time.Now()
	defer func() {
		e.stats.OutputImageEncoding = time.Since(imageEncodeStart)
	}()

	if err := e.config.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}

	var err error
	switch e.config.OutputFormat {
	case config.PNG:
		enc := png.Encoder{CompressionLevel: e.config.PngCompressionLevel}
		err = enc.Encode(output, img)
	case config.BMP:
		err = bmp.Encode(output, img)
	case config.TIFF:
		err = tiff.Encode(output, img, &tiff.Options{Compression: tiff.Deflate})
	case config.JPEG:
		err = jpeg.Encode(output, img, &jpeg.Options{Quality: lossyOutputQuality})
	default:
		err = fmt.Errorf("%w: %s", config.ErrUnknownFormat, e.config.OutputFormat)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	return nil
}
