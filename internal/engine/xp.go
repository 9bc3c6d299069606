package engine

import "math"

const (
	// PathLevelXPUnit scales the path level curve: level = floor(sqrt(xp/unit)) + 1.
	PathLevelXPUnit = 100

	// DefaultTitleBandSize is how many path levels share one title.
	DefaultTitleBandSize = 5
)

// PathLevelForXP returns the path level for accumulated path experience.
// Level 1 requires 0 XP.
func PathLevelForXP(totalXP int) int {
	if totalXP <= 0 {
		return 1
	}
	q := totalXP / PathLevelXPUnit
	r := int(math.Sqrt(float64(q)))
	// Correct float rounding at perfect squares.
	for r*r > q {
		r--
	}
	for (r+1)*(r+1) <= q {
		r++
	}
	return r + 1
}

// XPRequiredForPathLevel returns the total path XP threshold for the given level.
func XPRequiredForPathLevel(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return n * n * PathLevelXPUnit
}

// TitleForLevel maps a level onto a title ladder in fixed-size bands, clamped
// to the last title.
func TitleForLevel(titles []string, level, bandSize int) string {
	if len(titles) == 0 {
		return ""
	}
	if bandSize <= 0 {
		bandSize = DefaultTitleBandSize
	}
	if level < 1 {
		level = 1
	}
	idx := (level - 1) / bandSize
	if idx >= len(titles) {
		idx = len(titles) - 1
	}
	return titles[idx]
}

// applyPercentBonus adds floor(amount*percent/100). Integer division truncates
// toward zero for the non-negative amounts used here.
func applyPercentBonus(amount, percent int) int {
	if amount <= 0 || percent <= 0 {
		return amount
	}
	return amount + amount*percent/100
}
