package models

// ChartData is a chart.js compatible payload
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartDataset is one series of a chart. Optional styling fields are omitted when unset.
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Type            string    `json:"type,omitempty"`
	BorderDash      []int     `json:"borderDash,omitempty"`
	Stack           string    `json:"stack,omitempty"`
}
