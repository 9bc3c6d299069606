package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathLevelBoundaries(t *testing.T) {
	cases := map[int]int{0: 1, 99: 1, 100: 2, 399: 2, 400: 3, 899: 3, 900: 4, 10000: 11}
	for xp, want := range cases {
		assert.Equal(t, want, PathLevelForXP(xp), "xp %d", xp)
	}
	for level := 1; level <= 30; level++ {
		assert.Equal(t, level, PathLevelForXP(XPRequiredForPathLevel(level)), "level %d", level)
	}
}

func TestTitleForLevel(t *testing.T) {
	titles := []string{"Novice", "Adept", "Master"}
	assert.Equal(t, "Novice", TitleForLevel(titles, 1, 5))
	assert.Equal(t, "Novice", TitleForLevel(titles, 5, 5))
	assert.Equal(t, "Adept", TitleForLevel(titles, 6, 5))
	assert.Equal(t, "Master", TitleForLevel(titles, 11, 5))
	assert.Equal(t, "Master", TitleForLevel(titles, 500, 5))
	assert.Equal(t, "", TitleForLevel(nil, 3, 5))
}

func TestPercentBonusTruncates(t *testing.T) {
	assert.Equal(t, 16, applyPercentBonus(15, 10))
	assert.Equal(t, 9, applyPercentBonus(9, 10))
	assert.Equal(t, 2, applyPercentBonus(2, 10))
	assert.Equal(t, 11, applyPercentBonus(10, 10))
}
