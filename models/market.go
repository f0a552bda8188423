package models

// MarketPriceQuery is the market price form.
type MarketPriceQuery struct {
	Commodity string `query:"commodity"`
	State     string `query:"state"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Page      int    `query:"page"`
	PageSize  int    `query:"pageSize"`
}

// MarketPrice is one row of the commodity market table, prices per quintal.
type MarketPrice struct {
	Date                 string  `json:"date"`
	MarketName           string  `json:"market_name"`
	Variety              string  `json:"variety"`
	MinPricePerQuintal   float64 `json:"min_price_per_quintal"`
	MaxPricePerQuintal   float64 `json:"max_price_per_quintal"`
	ModalPricePerQuintal float64 `json:"modal_price_per_quintal"`
}
