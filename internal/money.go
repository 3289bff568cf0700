package internal

import "fmt"

// Cents is a money amount scaled by 100.
type Cents int64

// Dollars is for display only; arithmetic stays in Cents.
func (c Cents) Dollars() float64 { return float64(c) / 100 }

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

// BasisPoints is an interest rate scaled by 100 (525 = 5.25%).
type BasisPoints int64

func (b BasisPoints) Percent() float64 { return float64(b) / 100 }

func (b BasisPoints) String() string { return fmt.Sprintf("%.1f%%", b.Percent()) }
