package model

import "time"

// PricePoint is a single (timestamp, price) sample.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// PriceSeries holds one coin's fetched price history for a slot. A series
// is replaced wholesale on every successful fetch cycle and never outlives
// the selection it was derived from.
type PriceSeries struct {
	Slot   Slot
	CoinID string
	Name   string
	Points []PricePoint
}
