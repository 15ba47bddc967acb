package watermark

import (
	"fmt"
	"image"
	"image/color"
	"lsbmark/internal/bits"
	"lsbmark/pkg/config"
	"lsbmark/test"
	"testing"
)

const testImageSize = 64

type testFunc func(t *testing.T, channel config.Channel)

func runImageTestsWithAllChannels(t *testing.T, testFunc testFunc) {
	for _, channel := range []config.Channel{config.Red, config.Green, config.Blue} {
		channelCopy := channel
		t.Run(fmt.Sprintf("channel-%s", channel), func(t *testing.T) {
			t.Parallel()
			testFunc(t, channelCopy)
		})
	}
}

func configForChannel(channel config.Channel) config.WatermarkConfig {
	wConfig := config.DefaultWatermarkConfig()
	wConfig.Channel = channel
	return wConfig
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	clone := image.NewRGBA(img.Bounds())
	copy(clone.Pix, img.Pix)
	return clone
}

// textThatFills returns ASCII text whose framed stream uses as much of the image as possible. ASCII never contains 15
// consecutive set bits, so the payload can not be mistaken for the sentinel
func textThatFills(img image.Image) string {
	return test.GenerateASCIIText(MaxTextLength(img.Bounds()))
}

// generateImageWithoutSentinel returns random pixels where every eighth bit of every channel's LSB stream is cleared,
// so no run of 15 set bits, and therefore no sentinel, can appear whatever channel is scanned
func generateImageWithoutSentinel(width, height int) *image.RGBA {
	img := test.GenerateImage(width, height)
	pixel := 0
	Scan(img.Bounds(), func(x, y int) bool {
		if pixel%8 == 0 {
			i := img.PixOffset(x, y)
			img.Pix[i] &^= 1
			img.Pix[i+1] &^= 1
			img.Pix[i+2] &^= 1
		}
		pixel++
		return true
	})
	return img
}

func readChannelLSBs(img *image.RGBA, channel config.Channel, count int) bits.Stream {
	stream := make(bits.Stream, 0, count)
	Scan(img.Bounds(), func(x, y int) bool {
		stream = append(stream, img.Pix[img.PixOffset(x, y)+channel.Offset()]&1)
		return len(stream) < count
	})
	return stream
}

func uniformImage(width, height int, c color.RGBA) *image.RGBA {
	return test.GenerateUniformImage(width, height, c)
}
