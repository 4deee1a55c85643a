package utils

import "testing"

func TestToCentsRounding(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{15.50, 1550},
		{0.01, 1},
		{-10.00, -1000},
		{0.015, 2}, // rounds half away from zero at representable values
		{29.99, 2999},
		{0, 0},
	}
	for _, tt := range tests {
		if got := ToCents(tt.amount); got != tt.want {
			t.Errorf("ToCents(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestFromCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 1550, -2999, 123456789} {
		if got := ToCents(FromCents(cents)); got != cents {
			t.Errorf("round trip %d -> %d", cents, got)
		}
	}
}
