package view

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/b0ase/path402/apps/baguette/internal/market"
)

// Undefined stands in for a percentage that cannot be computed.
const Undefined = "—"

// FormatPrice renders a token price with four decimals.
func FormatPrice(p float64) string {
	return fmt.Sprintf("$%.4f", p)
}

// FormatVolume renders a dollar volume with thousands separators.
func FormatVolume(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 3)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatAmount renders a holder balance.
func FormatAmount(a float64) string {
	return humanize.CommafWithDigits(a, 3)
}

// FormatDominance renders both shares with one decimal, or Undefined for
// each when the combined volume is zero.
func FormatDominance(d market.Dominance) (cat, dog string) {
	if !d.Defined {
		return Undefined, Undefined
	}
	return fmt.Sprintf("%.1f%%", d.Catguette), fmt.Sprintf("%.1f%%", d.Doguette)
}
