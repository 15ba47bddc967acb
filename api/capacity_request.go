package api

type CapacityRequest struct {
	Image []byte `json:"image" binding:"required"`
	Text  string `json:"text"`
}

type CapacityResponse struct {
	Width         int  `json:"width"`
	Height        int  `json:"height"`
	CapacityBits  int  `json:"capacity_bits"`
	MaxTextLength int  `json:"max_text_length"`
	RequiredBits  int  `json:"required_bits,omitempty"`
	Fits          bool `json:"fits"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
