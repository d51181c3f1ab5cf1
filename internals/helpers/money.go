package helper

import (
	"errors"
	"fmt"
	"math"
)

var ErrFractionalCents = errors.New("amount has more than two decimal places")

// ToCents mengubah nominal desimal (mis. 45.5) ke sen. Nominal dengan >2 desimal ditolak.
func ToCents(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errors.New("amount is not a finite number")
	}
	scaled := amount * 100
	cents := math.Round(scaled)
	if math.Abs(scaled-cents) > 1e-6 {
		return 0, ErrFractionalCents
	}
	return int64(cents), nil
}

func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

// FormatCents: 4550 -> "45.50"
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
