package server

import (
	"lsbmark/api"
	"lsbmark/pkg/model"
	"math"
	"strconv"
)

func toHumanizedEncodeStats(encodeStats model.EncodeStats) api.EncodeStats {
	return api.EncodeStats{
		Setup:                    encodeStats.Setup,
		DataEncoding:             encodeStats.DataEncoding,
		OutputImageEncoding:      encodeStats.OutputImageEncoding,
		PayloadBits:              encodeStats.PayloadBits,
		CapacityBits:             encodeStats.CapacityBits,
		PSNR:                     formatPSNR(encodeStats.PSNR),
		SetupHuman:               encodeStats.Setup.String(),
		DataEncodingHuman:        encodeStats.DataEncoding.String(),
		OutputImageEncodingHuman: encodeStats.OutputImageEncoding.String(),
	}
}

func toHumanizedDecodeStats(decodeStats model.DecodeStats) api.DecodeStats {
	return api.DecodeStats{
		DataDecoding:      decodeStats.DataDecoding,
		ScannedBits:       decodeStats.ScannedBits,
		DataDecodingHuman: decodeStats.DataDecoding.String(),
	}
}

// formatPSNR renders the ratio in dB. Identical images have an infinite ratio, which JSON cannot carry as a number
func formatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "inf"
	}
	return strconv.FormatFloat(psnr, 'f', 2, 64)
}
