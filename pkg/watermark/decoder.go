package watermark

import (
	"image"
	"lsbmark/internal/bits"
	"lsbmark/pkg/config"
	"lsbmark/pkg/model"
	"time"
)

type Decoder struct {
	config config.WatermarkConfig
	stats  model.DecodeStats
}

func NewImageDecoder(wConfig config.WatermarkConfig) *Decoder {
	wConfig.PopulateUnsetConfigVars()
	return &Decoder{
		config: wConfig,
	}
}

func (d *Decoder) Stats() model.DecodeStats {
	return d.stats
}

// Decode collects the least significant bit of the configured channel from every pixel and looks for the sentinel.
// The payload length is unknown up front, so the whole image is always scanned
func (d *Decoder) Decode(img image.Image) model.DecodeResult {
	decodeStart := time.Now()
	defer func() {
		d.stats.DataDecoding = time.Since(decodeStart)
	}()

	rgb, isRGBA := img.(*image.RGBA)
	if !isRGBA || !rgb.Opaque() {
		rgb = ToRGB(img)
	}

	stream := make(bits.Stream, 0, Capacity(rgb.Bounds()))
	channelOffset := d.config.Channel.Offset()
	Scan(rgb.Bounds(), func(x, y int) bool {
		stream = append(stream, rgb.Pix[rgb.PixOffset(x, y)+channelOffset]&1)
		return true
	})
	d.stats.ScannedBits = len(stream)

	sentinelIdx := stream.Index(SentinelBits)
	if sentinelIdx == -1 {
		return model.DecodeResult{Found: false}
	}

	return model.DecodeResult{
		Found:       true,
		Text:        BitsToText(stream[:sentinelIdx]),
		PayloadBits: sentinelIdx,
	}
}
