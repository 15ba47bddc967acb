package model

import (
	"time"
)

type EncodeStats struct {
	Setup               time.Duration `json:"setup"`
	DataEncoding        time.Duration `json:"data_encoding"`
	OutputImageEncoding time.Duration `json:"output_image_encoding"`
	PayloadBits         int           `json:"payload_bits"`
	CapacityBits        int           `json:"capacity_bits"`
	PSNR                float64       `json:"-"`
}

type DecodeStats struct {
	DataDecoding time.Duration `json:"data_decoding"`
	ScannedBits  int           `json:"scanned_bits"`
}
