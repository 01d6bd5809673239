package parse

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		text     string
		expected float64
	}{
		{"$5", 5},
		{"$2.50", 2.5},
		{"10", 10},
		{"Ticket: $30", 30},
		{"", 0},
		{"free", 0},
		// Digits-only pattern: the comma terminates the match. Prize
		// columns go through PrizeAmount instead.
		{"$1,000", 1},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Currency(tt.text); got != tt.expected {
				t.Errorf("Currency(%q) = %v, expected %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestPrizeAmount(t *testing.T) {
	tests := []struct {
		text     string
		expected float64
	}{
		{"$1,000", 1000},
		{"$1,000,000", 1000000},
		{"$500,000.50", 500000.5},
		{"$50", 50},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := PrizeAmount(tt.text); got != tt.expected {
				t.Errorf("PrizeAmount(%q) = %v, expected %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestOddsRatio(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"1 in 4.25", "1 in 4.25"},
		{"1 IN 4.25", "1 in 4.25"},
		{"Overall odds: 1 in 3,000,000", "1 in 3000000"},
		{"1  in  4", "1 in 4"},
		{"garbage", "garbage"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := OddsRatio(tt.text); got != tt.expected {
				t.Errorf("OddsRatio(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestOddsDenominator(t *testing.T) {
	tests := []struct {
		odds     string
		expected float64
		ok       bool
	}{
		{"1 in 4.0", 4.0, true},
		{"1 in 24.87", 24.87, true},
		{"1 in 3,000,000", 3000000, true},
		{"garbage", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.odds, func(t *testing.T) {
			n, ok := OddsDenominator(tt.odds)
			if n != tt.expected || ok != tt.ok {
				t.Errorf("OddsDenominator(%q) = %v, %v, expected %v, %v", tt.odds, n, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"7", 7},
		{"1,234", 1234},
		{" 42 ", 42},
		{"none", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Count(tt.text); got != tt.expected {
				t.Errorf("Count(%q) = %d, expected %d", tt.text, got, tt.expected)
			}
		})
	}
}
