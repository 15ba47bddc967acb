package test

import (
	"image"
	"image/color"
	"math/rand"
)

func GenerateRandomBytes(numOfBytesToGenerate int) []byte {
	generatedBytes := make([]byte, numOfBytesToGenerate)
	_, err := rand.Read(generatedBytes)
	if err != nil {
		panic(err)
	}
	return generatedBytes
}

// GenerateText returns random text made of characters in the 1-255 range, which is everything that survives a
// watermark round trip
func GenerateText(length int) string {
	runes := make([]rune, length)
	for i := range runes {
		runes[i] = rune(rand.Intn(255) + 1)
	}
	return string(runes)
}

// GenerateASCIIText returns random printable ASCII text
func GenerateASCIIText(length int) string {
	runes := make([]rune, length)
	for i := range runes {
		runes[i] = rune(rand.Intn(95) + 32)
	}
	return string(runes)
}

// GenerateImage returns an opaque image filled with random colours
func GenerateImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: RandUint8(), G: RandUint8(), B: RandUint8(), A: 255})
		}
	}
	return img
}

// GenerateUniformImage returns an opaque image where every pixel has the colour c
func GenerateUniformImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func RandUint8() uint8 {
	return uint8(rand.Intn(256))
}
