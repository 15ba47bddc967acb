package watermark

import (
	"errors"
	"fmt"
)

var (
	ErrInput    = errors.New("source image could not be opened or decoded")
	ErrCapacity = errors.New("payload too long for image")
	ErrOutput   = errors.New("encoded image could not be written")
	ErrEncoding = errors.New("text contains characters outside the single byte range")
	ErrReport   = errors.New("watermark report could not be written")
)

// CapacityError carries the numbers behind an ErrCapacity failure. It matches ErrCapacity with errors.Is
type CapacityError struct {
	Required  int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: framed payload needs %d bits but the image only holds %d", ErrCapacity, e.Required, e.Available)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}
