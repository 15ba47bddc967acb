package watermark

import (
	"image"
	"image/color"
)

// ToRGB copies img into a new RGBA image holding its straight (non premultiplied) red, green and blue values with the
// alpha channel forced to opaque. The watermark only lives in the colour channels, so transparency is discarded the
// same way an RGB conversion would discard it. The source image is never modified
func ToRGB(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)

	switch src := img.(type) {
	case *image.RGBA:
		if src.Opaque() {
			for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
				copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):dst.PixOffset(bounds.Max.X, y)],
					src.Pix[src.PixOffset(bounds.Min.X, y):src.PixOffset(bounds.Max.X, y)])
			}
			return dst
		}
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(bounds.Min.X, y):dst.PixOffset(bounds.Max.X, y)],
				src.Pix[src.PixOffset(bounds.Min.X, y):src.PixOffset(bounds.Max.X, y)])
		}
		forceOpaque(dst)
		return dst
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			i := dst.PixOffset(x, y)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = c.R, c.G, c.B, 0xFF
		}
	}
	return dst
}

func forceOpaque(img *image.RGBA) {
	for p := 3; p < len(img.Pix); p += 4 {
		img.Pix[p] = 0xFF
	}
}
