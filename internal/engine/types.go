package engine

import (
	"fmt"
	"strings"
)

type Attribute string

const (
	AttributeSpiritual    Attribute = "spiritual"
	AttributeHealth       Attribute = "health"
	AttributeIntelligence Attribute = "intelligence"
	AttributePhysical     Attribute = "physical"
	AttributeCreativity   Attribute = "creativity"
	AttributeResilience   Attribute = "resilience"
)

// AllAttributes lists the fixed attribute set in display order.
var AllAttributes = []Attribute{
	AttributeSpiritual,
	AttributeHealth,
	AttributeIntelligence,
	AttributePhysical,
	AttributeCreativity,
	AttributeResilience,
}

func (a Attribute) IsValid() bool {
	switch a {
	case AttributeSpiritual, AttributeHealth, AttributeIntelligence,
		AttributePhysical, AttributeCreativity, AttributeResilience:
		return true
	default:
		return false
	}
}

// ParseAttribute parses user input to an Attribute. A few short aliases are accepted.
func ParseAttribute(input string) (Attribute, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "spirit":
		return AttributeSpiritual, nil
	case "int", "intellect":
		return AttributeIntelligence, nil
	case "str", "phys", "strength":
		return AttributePhysical, nil
	case "art", "creative":
		return AttributeCreativity, nil
	case "res", "grit":
		return AttributeResilience, nil
	}
	a := Attribute(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid attribute: %q", input)
	}
	return a, nil
}

type Rank string

const (
	RankE   Rank = "E"
	RankD   Rank = "D"
	RankC   Rank = "C"
	RankB   Rank = "B"
	RankA   Rank = "A"
	RankS   Rank = "S"
	RankSS  Rank = "SS"
	RankSSS Rank = "SSS"
)

// Ranks is the total order of tiers, lowest first.
var Ranks = []Rank{RankE, RankD, RankC, RankB, RankA, RankS, RankSS, RankSSS}

// Index returns the position of r in Ranks, or -1 for an unknown label.
func (r Rank) Index() int {
	for i, v := range Ranks {
		if v == r {
			return i
		}
	}
	return -1
}

func (r Rank) IsValid() bool { return r.Index() >= 0 }

// Less reports whether r is a strictly lower tier than o.
func (r Rank) Less(o Rank) bool { return r.Index() < o.Index() }

func ParseRank(input string) (Rank, error) {
	r := Rank(strings.TrimSpace(strings.ToUpper(input)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid rank: %q", input)
	}
	return r, nil
}

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) IsValid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

func ParseFrequency(input string) (Frequency, error) {
	f := Frequency(strings.TrimSpace(strings.ToLower(input)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid frequency: %q", input)
	}
	return f, nil
}
