package api

import "time"

type DecodeImageRequest struct {
	ImageToDecode []byte `json:"image_to_decode" binding:"required"`
	Channel       string `json:"channel"`
}

type DecodeImageResponse struct {
	Found       bool        `json:"found"`
	Text        string      `json:"text"`
	PayloadBits int         `json:"payload_bits"`
	Message     string      `json:"message"`
	Stats       DecodeStats `json:"stats"`
}

type DecodeStats struct {
	DataDecoding      time.Duration `json:"data_decoding"`
	ScannedBits       int           `json:"scanned_bits"`
	DataDecodingHuman string        `json:"data_decoding_human"`
}
