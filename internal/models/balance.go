package models

// AssetBalance is one asset's balance split into spendable and
// in-order amounts.
type AssetBalance struct {
	Free   float64 `json:"free"`
	Locked float64 `json:"locked"`
	Total  float64 `json:"total"`
}
