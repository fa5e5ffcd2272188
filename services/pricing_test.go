package services

import "testing"

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name     string
		unitCost float64
		markup   float64
		want     float64
	}{
		{"twenty percent", 100, 20, 120},
		{"zero markup", 100, 0, 100},
		{"zero cost", 0, 35, 0},
		{"fractional cost", 49.99, 100, 99.98},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnitPrice(tt.unitCost, tt.markup)
			if got != tt.want {
				t.Errorf("UnitPrice(%v, %v) = %v, want %v", tt.unitCost, tt.markup, got, tt.want)
			}
		})
	}
}

func TestEffectiveMarkup(t *testing.T) {
	zero := 0.0
	thirty := 30.0
	tests := []struct {
		name         string
		override     *float64
		quoteDefault float64
		want         float64
	}{
		{"nil falls back to default", nil, 20, 20},
		{"override wins", &thirty, 20, 30},
		{"explicit zero override wins over default", &zero, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveMarkup(tt.override, tt.quoteDefault)
			if got != tt.want {
				t.Errorf("EffectiveMarkup = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		// 1.005 stores just below the midpoint in float64, so it rounds
		// down, same as the stored values callers actually pass in.
		{1.005, 1.00},
		{-1.005, -1.00},
		{19.199999999999999, 19.2},
		{2.344, 2.34},
		{2.345, 2.35},
		{0.125, 0.13},
		{-0.125, -0.13},
		{1.045, 1.05},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLineTotalsAndMargin(t *testing.T) {
	cost := LineCost(49.50, 4)
	if cost != 198 {
		t.Errorf("LineCost = %v, want 198", cost)
	}
	price := LinePrice(59.40, 4)
	if price != 237.6 {
		t.Errorf("LinePrice = %v, want 237.6", price)
	}
	if m := Margin(price, cost); Round2(m) != 39.6 {
		t.Errorf("Margin = %v, want 39.6", m)
	}
}
