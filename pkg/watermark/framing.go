package watermark

import (
	"fmt"
	"image"
	"lsbmark/internal/bits"
	"strings"
)

const (
	// Sentinel marks the end of the payload. It is part of the file format and must never change
	Sentinel   = "1111111111111110"
	MethodName = "Least Significant Bit (LSB)"

	bitsPerCharacter = 8
	maxCharacter     = 0xFF
)

var (
	SentinelBits = bits.MustParse(Sentinel)
)

// TextToBits renders every character as its 8 bit code point, most significant bit first. Characters that do not
// fit in a single byte are rejected rather than truncated
func TextToBits(text string) (bits.Stream, error) {
	stream := make(bits.Stream, 0, len(text)*bitsPerCharacter)
	charIdx := 0
	for _, r := range text {
		if r > maxCharacter {
			return nil, fmt.Errorf("%w: %q (U+%04X) at position %d", ErrEncoding, r, r, charIdx)
		}
		stream = bits.AppendByte(stream, byte(r))
		charIdx++
	}
	return stream, nil
}

// BitsToText groups the stream into bytes and maps each one back to a character. A trailing partial group is dropped
// and groups that are all zeroes are skipped, so a NUL character can never survive a round trip
func BitsToText(stream bits.Stream) string {
	var sb strings.Builder
	for _, b := range stream.Bytes() {
		if b == 0 {
			continue
		}
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

// FrameText returns the bits that get embedded for text: the payload followed by the sentinel
func FrameText(text string) (bits.Stream, error) {
	payload, err := TextToBits(text)
	if err != nil {
		return nil, err
	}
	return append(payload, SentinelBits...), nil
}

// Capacity is the number of bits an image can hold, one per pixel
func Capacity(bounds image.Rectangle) int {
	return bounds.Dx() * bounds.Dy()
}

// RequiredBits is the length of the framed stream for text
func RequiredBits(text string) (int, error) {
	characters := 0
	for _, r := range text {
		if r > maxCharacter {
			return 0, fmt.Errorf("%w: %q (U+%04X) at position %d", ErrEncoding, r, r, characters)
		}
		characters++
	}
	return characters*bitsPerCharacter + len(SentinelBits), nil
}

// MaxTextLength is the longest text, in characters, that fits in an image with the given bounds
func MaxTextLength(bounds image.Rectangle) int {
	maxLength := (Capacity(bounds) - len(SentinelBits)) / bitsPerCharacter
	if maxLength < 0 {
		return 0
	}
	return maxLength
}

// Scan visits every pixel in raster order: rows top to bottom, and left to right inside a row. Encoders and decoders
// both go through Scan, which is what keeps them in agreement about where each bit lives. Returning false from visit
// stops the scan
func Scan(bounds image.Rectangle, visit func(x, y int) bool) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !visit(x, y) {
				return
			}
		}
	}
}
