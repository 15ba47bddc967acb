package api

import "time"

type EncodeImageRequest struct {
	ImageToEncode  []byte `json:"image_to_encode" binding:"required"`
	Text           string `json:"text"`
	Channel        string `json:"channel"`
	OutputFormat   string `json:"output_format"`
	PngCompression string `json:"png_compression"`
}

type EncodeImageResponse struct {
	EncodedImage []byte      `json:"encoded_image"`
	Stats        EncodeStats `json:"stats"`
}

type EncodeStats struct {
	Setup                    time.Duration `json:"setup"`
	DataEncoding             time.Duration `json:"data_encoding"`
	OutputImageEncoding      time.Duration `json:"output_image_encoding"`
	PayloadBits              int           `json:"payload_bits"`
	CapacityBits             int           `json:"capacity_bits"`
	PSNR                     string        `json:"psnr"`
	SetupHuman               string        `json:"setup_human"`
	DataEncodingHuman        string        `json:"data_encoding_human"`
	OutputImageEncodingHuman string        `json:"output_image_encoding_human"`
}
