package model

const NotFoundMessage = "No watermark found."

// DecodeResult is what a decode produces. A missing sentinel is reported with Found set to false rather than as an
// error, which keeps "no watermark" distinguishable from a watermark whose text is empty
type DecodeResult struct {
	Found       bool   `json:"found"`
	Text        string `json:"text"`
	PayloadBits int    `json:"payload_bits"`
}

func (r DecodeResult) String() string {
	if !r.Found {
		return NotFoundMessage
	}
	return r.Text
}
