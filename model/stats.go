package model

type PopularItem struct {
	Item  string `json:"item"` // "Momo (half)"
	Count int    `json:"count"`
}

type OrderStats struct {
	Total     int     `json:"total"`
	Confirmed int     `json:"confirmed"`
	Pending   int     `json:"pending"`
	Deleted   int     `json:"deleted"`
	Earnings  float64 `json:"earnings"`
	Loss      float64 `json:"loss"`

	EarningsGrowth float64 `json:"earningsGrowth"` // % so với kỳ trước

	PopularItems []PopularItem  `json:"popularItems"`
	OrderTypes   map[string]int `json:"orderTypes"`
	HourlyData   [24]int        `json:"hourlyData"`
}
