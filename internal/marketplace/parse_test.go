package marketplace

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$1,299.99", 1299.99},
		{"$59", 59},
		{"199.95", 199.95},
		{"", 0},
		{"N/A", 0},
		{"  $24.00 ", 24},
	}
	for _, tt := range tests {
		if got := ParsePrice(tt.in); got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"4.5 out of 5 stars", 4.5},
		{"4", 4},
		{"No ratings yet", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseRating(tt.in); got != tt.want {
			t.Errorf("ParseRating(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPriceBandContains(t *testing.T) {
	band := PriceBand{Lower: 0.3, Upper: 2.5}
	tests := []struct {
		ref, price float64
		want       bool
	}{
		{199, 205, true},
		{199, 610, false},
		{199, 59.7, true},
		{199, 59, false},
		{199, 497.5, true},
	}
	for _, tt := range tests {
		if got := band.Contains(tt.ref, tt.price); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.ref, tt.price, got, tt.want)
		}
	}

	zero := PriceBand{}
	if !zero.Contains(100, 1e9) {
		t.Error("zero band rejected a price, want accept all")
	}
}
