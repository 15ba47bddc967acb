package watermark

import (
	"errors"
	"image"
	"image/color"
	"lsbmark/pkg/config"
	"lsbmark/test"
	"testing"
)

func TestEncodeWritesFramedStream(t *testing.T) {
	runImageTestsWithAllChannels(t, func(t *testing.T, channel config.Channel) {
		img := test.GenerateImage(testImageSize, testImageSize)
		original := cloneRGBA(img)
		text := textThatFills(img)

		encoder, err := NewImageEncoder(configForChannel(channel))
		if err != nil {
			t.Fatalf("Error creating image encoder: %s", err)
		}
		encoded, err := encoder.Encode(img, text)
		if err != nil {
			t.Fatalf("Error encoding text: %s", err)
		}

		framed, _ := FrameText(text)
		if got := readChannelLSBs(encoded, channel, len(framed)); !got.Equal(framed) {
			t.Errorf("Embedded bits do not match framed stream for channel %s", channel)
		}
		if stats := encoder.Stats(); stats.PayloadBits != len(framed) || stats.CapacityBits != testImageSize*testImageSize {
			t.Errorf("Unexpected stats %+v", stats)
		}

		checkOnlyDesignatedChannelChanged(t, original, encoded, channel, len(framed))
		if !equalPixels(original, img) {
			t.Errorf("Source image was modified during encode")
		}
	})
}

func checkOnlyDesignatedChannelChanged(t *testing.T, original, encoded *image.RGBA, channel config.Channel, framedBits int) {
	t.Helper()
	pixel := 0
	Scan(original.Bounds(), func(x, y int) bool {
		before := original.Pix[original.PixOffset(x, y) : original.PixOffset(x, y)+4]
		after := encoded.Pix[encoded.PixOffset(x, y) : encoded.PixOffset(x, y)+4]
		for c := 0; c < 4; c++ {
			switch {
			case c == channel.Offset() && pixel < framedBits:
				if before[c]&^1 != after[c]&^1 {
					t.Errorf("Pixel %d channel %d changed beyond its LSB: %d -> %d", pixel, c, before[c], after[c])
					return false
				}
			case before[c] != after[c]:
				t.Errorf("Pixel %d channel %d should be untouched: %d -> %d", pixel, c, before[c], after[c])
				return false
			}
		}
		pixel++
		return true
	})
}

func equalPixels(a, b *image.RGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

func TestEncodeCapacityBoundary(t *testing.T) {
	// 8 characters need 8*8+16 = 80 bits
	text := "boundary"

	exact := test.GenerateImage(8, 10)
	encoder, _ := NewImageEncoder(config.DefaultWatermarkConfig())
	if _, err := encoder.Encode(exact, text); err != nil {
		t.Errorf("Expected text filling the image exactly to encode, got %s", err)
	}

	oneShort := test.GenerateImage(1, 79)
	original := cloneRGBA(oneShort)
	encoded, err := encoder.Encode(oneShort, text)
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("Expected ErrCapacity, got %v", err)
	}
	if encoded != nil {
		t.Errorf("Expected no image to be returned on capacity failure")
	}

	var capacityErr *CapacityError
	if !errors.As(err, &capacityErr) || capacityErr.Required != 80 || capacityErr.Available != 79 {
		t.Errorf("Expected capacity error with 80 required and 79 available, got %v", err)
	}
	if !equalPixels(original, oneShort) {
		t.Errorf("Source image was modified by a failed encode")
	}
}

func TestNewImageEncoderRejectsUnknownChannel(t *testing.T) {
	wConfig := config.DefaultWatermarkConfig()
	wConfig.Channel = config.Channel(7)
	encoder, err := NewImageEncoder(wConfig)
	if !errors.Is(err, config.ErrUnknownChannel) {
		t.Fatalf("Expected ErrUnknownChannel, got %v", err)
	}
	if encoder != nil {
		t.Errorf("Expected no encoder for an unknown channel")
	}
}

func TestEncodeRejectsWideCharacters(t *testing.T) {
	encoder, _ := NewImageEncoder(config.DefaultWatermarkConfig())
	for _, text := range []string{"snowman ☃", "Ā", "emoji 😀"} {
		_, err := encoder.Encode(test.GenerateImage(testImageSize, testImageSize), text)
		if !errors.Is(err, ErrEncoding) {
			t.Errorf("Expected ErrEncoding for %q, got %v", text, err)
		}
	}
}

func TestEncodeAcceptsLatin1(t *testing.T) {
	encoder, _ := NewImageEncoder(config.DefaultWatermarkConfig())
	encoded, err := encoder.Encode(test.GenerateImage(testImageSize, testImageSize), "café ÿ")
	if err != nil {
		t.Fatalf("Expected latin-1 text to encode, got %s", err)
	}
	if result := NewImageDecoder(config.DefaultWatermarkConfig()).Decode(encoded); result.Text != "café ÿ" {
		t.Errorf("Expected café ÿ, got %q", result.Text)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	img := test.GenerateImage(testImageSize, testImageSize)
	encoder, _ := NewImageEncoder(config.DefaultWatermarkConfig())

	first, err := encoder.Encode(img, "same input")
	if err != nil {
		t.Fatalf("Error encoding text: %s", err)
	}
	second, err := encoder.Encode(img, "same input")
	if err != nil {
		t.Fatalf("Error encoding text: %s", err)
	}
	if !equalPixels(first, second) {
		t.Errorf("Encoding the same input twice produced different images")
	}
}

func TestEncodeSubImageStartsAtBoundsMin(t *testing.T) {
	parent := uniformImage(10, 10, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	sub := parent.SubImage(image.Rect(3, 4, 9, 10)).(*image.RGBA)

	encoder, _ := NewImageEncoder(config.DefaultWatermarkConfig())
	encoded, err := encoder.Encode(sub, "A")
	if err != nil {
		t.Fatalf("Error encoding text: %s", err)
	}
	if encoded.Bounds() != sub.Bounds() {
		t.Fatalf("Expected bounds %v, got %v", sub.Bounds(), encoded.Bounds())
	}
	// "A" is 01000001, so the first pixel of the sub image gets an even red value and the second an odd one
	if r := encoded.RGBAAt(3, 4).R; r != 200 {
		t.Errorf("Expected red 200 at the first sub image pixel, got %d", r)
	}
	if r := encoded.RGBAAt(4, 4).R; r != 201 {
		t.Errorf("Expected red 201 at the second sub image pixel, got %d", r)
	}
	if result := NewImageDecoder(config.DefaultWatermarkConfig()).Decode(encoded); result.Text != "A" {
		t.Errorf("Expected A, got %q", result.Text)
	}
}

func TestEncodeDropsTransparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 101, G: 77, B: 33, A: 10})
		}
	}

	encoder, _ := NewImageEncoder(config.DefaultWatermarkConfig())
	encoded, err := encoder.Encode(img, "hi")
	if err != nil {
		t.Fatalf("Error encoding text: %s", err)
	}
	last := encoded.RGBAAt(7, 7)
	if last != (color.RGBA{R: 101, G: 77, B: 33, A: 255}) {
		t.Errorf("Expected straight colour values with opaque alpha past the payload, got %+v", last)
	}
	if result := NewImageDecoder(config.DefaultWatermarkConfig()).Decode(encoded); result.Text != "hi" {
		t.Errorf("Expected hi, got %q", result.Text)
	}
}

func TestEncodePSNR(t *testing.T) {
	encoder, _ := NewImageEncoder(config.DefaultWatermarkConfig())
	if _, err := encoder.Encode(test.GenerateImage(testImageSize, testImageSize), "psnr"); err != nil {
		t.Fatalf("Error encoding text: %s", err)
	}
	// Only LSBs change, so the error per channel is at most one
	if psnr := encoder.Stats().PSNR; psnr < 48 {
		t.Errorf("Expected PSNR of at least 48dB, got %f", psnr)
	}
}
