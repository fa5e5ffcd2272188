// Package services holds the quote financial engine: pricing primitives,
// room and quote aggregation, BOM compilation, versioning and templates.
package services

import "math"

// Round2 rounds a monetary value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UnitPrice derives the sell price of one unit from its cost and a markup
// percentage (20 means 20%).
func UnitPrice(unitCost, markupPercent float64) float64 {
	return unitCost * (1 + markupPercent/100)
}

func LineCost(unitCost float64, quantity int) float64 {
	return unitCost * float64(quantity)
}

func LinePrice(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity)
}

// Margin is sell price minus cost, in currency units.
func Margin(price, cost float64) float64 {
	return price - cost
}

// EffectiveMarkup resolves the markup for an equipment line. A nil override
// falls back to the quote-wide default; a non-nil override wins even when it
// is zero, so 0% pass-through items stay distinguishable from "no override".
func EffectiveMarkup(override *float64, quoteDefault float64) float64 {
	if override != nil {
		return *override
	}
	return quoteDefault
}
