// Package magnitude renders raw byte sizes and item counts as short
// scaled strings such as "512 KB", "3.4 TB" or "1.5K".
package magnitude

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Precision selects how many decimals each unit tier is rounded to.
type Precision string

const (
	// PrecisionTenths rounds every tier to one decimal.
	PrecisionTenths Precision = "tenths"
	// PrecisionTiered rounds b, KB, MB and GB to whole numbers and TB
	// to one decimal.
	PrecisionTiered Precision = "tiered"
)

// Valid reports whether p is a known precision policy.
func (p Precision) Valid() bool {
	return p == PrecisionTenths || p == PrecisionTiered
}

const step = 1000

type unit struct {
	suffix string
	// decimals used by the tiered policy
	decimals int
}

var sizeUnits = []unit{
	{"b", 0},
	{"KB", 0},
	{"MB", 0},
	{"GB", 0},
	{"TB", 1},
}

var countUnits = []string{"", "K", "M", "B"}

// Formatter converts quantities using a fixed precision policy.
// The zero value uses PrecisionTenths.
type Formatter struct {
	Precision Precision
}

// Default is the formatter used by FormatSize and FormatCount.
var Default = Formatter{Precision: PrecisionTenths}

// FormatSize formats a byte quantity with the default policy.
func FormatSize(q float64) string {
	return Default.Size(q)
}

// FormatCount formats an item count with the default policy.
func FormatCount(q float64) string {
	return Default.Count(q)
}

// Size formats q bytes as "<number> <unit>". A fraction made only of
// zeros is dropped.
func (f Formatter) Size(q float64) string {
	mustBeValid(q)
	i, v := scaleRounded(q, len(sizeUnits), f.sizeDecimals)
	return humanize.FtoaWithDigits(v, f.sizeDecimals(i)) + " " + sizeUnits[i].suffix
}

// Count formats q items as "<number><suffix>". Scaled tiers always keep
// one decimal ("2.0K"), whole base tier values are written without one.
func (f Formatter) Count(q float64) string {
	mustBeValid(q)
	i, v := scaleRounded(q, len(countUnits), func(int) int { return 1 })
	decimals := 1
	if i == 0 && v == math.Trunc(v) {
		decimals = 0
	}
	return strings.TrimSpace(strconv.FormatFloat(v, 'f', decimals, 64) + countUnits[i])
}

func (f Formatter) sizeDecimals(tier int) int {
	if f.Precision == PrecisionTiered {
		return sizeUnits[tier].decimals
	}
	return 1
}

// scale divides q by 1000 while it is at least 1000 and a larger tier
// remains. It returns the tier index and the scaled value.
func scale(q float64, tiers int) (int, float64) {
	i := 0
	for q >= step && i < tiers-1 {
		q /= step
		i++
	}
	return i, q
}

// scaleRounded is scale followed by rounding half away from zero. A value
// that rounds up to 1000 moves on to the next tier, so 999960 bytes
// read "1 MB" rather than "1000 KB".
func scaleRounded(q float64, tiers int, decimals func(tier int) int) (int, float64) {
	i, v := scale(q, tiers)
	r := round(v, decimals(i))
	if r >= step && i < tiers-1 {
		i++
		r = round(v/step, decimals(i))
	}
	return i, r
}

func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

func mustBeValid(q float64) {
	if q < 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		panic(fmt.Sprintf("magnitude: invalid quantity %v", q))
	}
}
