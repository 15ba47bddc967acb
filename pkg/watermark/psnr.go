package watermark

import (
	"image"
	"math"
)

const maxChannelValue = 255.0

// PSNR measures how far encoded drifted from original over the red, green and blue channels, in decibels. Identical
// images return +Inf, images with different bounds return 0
func PSNR(original, encoded image.Image) float64 {
	if original.Bounds() != encoded.Bounds() || original.Bounds().Empty() {
		return 0.0
	}

	a, b := ToRGB(original), ToRGB(encoded)
	var mse float64
	for p := 0; p < len(a.Pix); p++ {
		if p%4 == 3 {
			continue
		}
		diff := float64(a.Pix[p]) - float64(b.Pix[p])
		mse += diff * diff
	}
	mse /= float64(len(a.Pix) / 4 * 3)

	if mse == 0 {
		return math.Inf(1)
	}
	return 20 * math.Log10(maxChannelValue/math.Sqrt(mse))
}
