package watermark

import (
	"image/color"
	"lsbmark/internal/bits"
	"lsbmark/pkg/config"
	"lsbmark/pkg/model"
	"testing"
)

func TestDecodeSentinelPlacement(t *testing.T) {
	img := uniformImage(16, 16, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	encoder, _ := NewImageEncoder(config.DefaultWatermarkConfig())
	encoded, err := encoder.Encode(img, "A")
	if err != nil {
		t.Fatalf("Error encoding text: %s", err)
	}

	result := NewImageDecoder(config.DefaultWatermarkConfig()).Decode(encoded)
	if !result.Found || result.Text != "A" || result.PayloadBits != 8 {
		t.Errorf("Expected A found after 8 bits, got %+v", result)
	}
}

func TestDecodeAbsence(t *testing.T) {
	testCases := map[string]func() model.DecodeResult{
		"even constant": func() model.DecodeResult {
			return NewImageDecoder(config.DefaultWatermarkConfig()).Decode(uniformImage(32, 32, color.RGBA{R: 2, A: 255}))
		},
		"odd constant": func() model.DecodeResult {
			return NewImageDecoder(config.DefaultWatermarkConfig()).Decode(uniformImage(32, 32, color.RGBA{R: 255, G: 255, B: 255, A: 255}))
		},
		"random": func() model.DecodeResult {
			return NewImageDecoder(config.DefaultWatermarkConfig()).Decode(generateImageWithoutSentinel(64, 64))
		},
		"smaller than sentinel": func() model.DecodeResult {
			return NewImageDecoder(config.DefaultWatermarkConfig()).Decode(uniformImage(3, 3, color.RGBA{R: 255, A: 255}))
		},
	}

	for name, decode := range testCases {
		t.Run(name, func(t *testing.T) {
			result := decode()
			if result.Found {
				t.Errorf("Expected no watermark, got %+v", result)
			}
			if result.String() != model.NotFoundMessage {
				t.Errorf("Expected not found message, got %q", result.String())
			}
		})
	}
}

func TestDecodeEmptyPayloadIsNotAbsence(t *testing.T) {
	encoder, _ := NewImageEncoder(config.DefaultWatermarkConfig())
	encoded, err := encoder.Encode(uniformImage(32, 32, color.RGBA{R: 2, A: 255}), "")
	if err != nil {
		t.Fatalf("Error encoding empty text: %s", err)
	}

	result := NewImageDecoder(config.DefaultWatermarkConfig()).Decode(encoded)
	if !result.Found || result.Text != "" || result.PayloadBits != 0 {
		t.Errorf("Expected an empty watermark to be found, got %+v", result)
	}
}

func TestDecodeSkipsNullGroups(t *testing.T) {
	img := uniformImage(8, 8, color.RGBA{A: 255})
	payload := bits.MustParse("01001000" + "00000000" + "01101001" + Sentinel)
	for i, bit := range payload {
		img.Pix[i*4] |= bit
	}

	result := NewImageDecoder(config.DefaultWatermarkConfig()).Decode(img)
	if !result.Found || result.Text != "Hi" || result.PayloadBits != 24 {
		t.Errorf("Expected Hi with the null group skipped, got %+v", result)
	}
}

func TestDecodeFindsUnalignedSentinel(t *testing.T) {
	img := uniformImage(8, 8, color.RGBA{A: 255})
	// Three stray bits before the sentinel do not form a full character and are dropped
	payload := bits.MustParse("01000001" + "101" + Sentinel)
	for i, bit := range payload {
		img.Pix[i*4] |= bit
	}

	result := NewImageDecoder(config.DefaultWatermarkConfig()).Decode(img)
	if !result.Found || result.Text != "A" || result.PayloadBits != 11 {
		t.Errorf("Expected A with an unaligned sentinel at 11, got %+v", result)
	}
}

func TestDecodeUsesConfiguredChannel(t *testing.T) {
	encoder, _ := NewImageEncoder(configForChannel(config.Blue))
	encoded, err := encoder.Encode(uniformImage(16, 16, color.RGBA{R: 4, G: 4, B: 4, A: 255}), "blue")
	if err != nil {
		t.Fatalf("Error encoding text: %s", err)
	}

	if result := NewImageDecoder(configForChannel(config.Blue)).Decode(encoded); result.Text != "blue" {
		t.Errorf("Expected blue from the blue channel, got %+v", result)
	}
	if result := NewImageDecoder(configForChannel(config.Red)).Decode(encoded); result.Found {
		t.Errorf("Expected nothing in the red channel, got %+v", result)
	}
}

func TestDecodeStats(t *testing.T) {
	decoder := NewImageDecoder(config.DefaultWatermarkConfig())
	decoder.Decode(uniformImage(10, 7, color.RGBA{A: 255}))
	if decoder.Stats().ScannedBits != 70 {
		t.Errorf("Expected 70 scanned bits, got %d", decoder.Stats().ScannedBits)
	}
}
