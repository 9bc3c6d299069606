package engine

// Tier is one row of a rank table. MinDays is only consulted by RankForElapsed.
type Tier struct {
	Rank     Rank
	MinValue int
	MinDays  int
}

// RankTable maps accumulated values onto ranks. Tiers are ordered E..SSS.
type RankTable struct {
	tiers []Tier
}

func NewRankTable(tiers []Tier) RankTable {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return RankTable{tiers: out}
}

// OverallRanks gates the overall rank on experience and on days since the
// user started, so experience alone cannot buy a tier.
var OverallRanks = NewRankTable([]Tier{
	{Rank: RankE, MinValue: 0, MinDays: 0},
	{Rank: RankD, MinValue: 270, MinDays: 3},
	{Rank: RankC, MinValue: 540, MinDays: 7},
	{Rank: RankB, MinValue: 1080, MinDays: 14},
	{Rank: RankA, MinValue: 2160, MinDays: 30},
	{Rank: RankS, MinValue: 4320, MinDays: 60},
	{Rank: RankSS, MinValue: 8640, MinDays: 120},
	{Rank: RankSSS, MinValue: 17280, MinDays: 240},
})

// AttributeRanks is never time-gated.
var AttributeRanks = NewRankTable([]Tier{
	{Rank: RankE, MinValue: 0},
	{Rank: RankD, MinValue: 20},
	{Rank: RankC, MinValue: 40},
	{Rank: RankB, MinValue: 60},
	{Rank: RankA, MinValue: 80},
	{Rank: RankS, MinValue: 100},
	{Rank: RankSS, MinValue: 120},
	{Rank: RankSSS, MinValue: 150},
})

// RankFor returns the highest rank whose value threshold is met.
func (t RankTable) RankFor(value int) Rank {
	best := RankE
	for _, tier := range t.tiers {
		if value >= tier.MinValue {
			best = tier.Rank
		}
	}
	return best
}

// RankForElapsed returns the highest rank whose value and day thresholds are
// both met.
func (t RankTable) RankForElapsed(value, elapsedDays int) Rank {
	best := RankE
	for _, tier := range t.tiers {
		if value >= tier.MinValue && elapsedDays >= tier.MinDays {
			best = tier.Rank
		}
	}
	return best
}

// Threshold returns the tier row for r.
func (t RankTable) Threshold(r Rank) (Tier, bool) {
	for _, tier := range t.tiers {
		if tier.Rank == r {
			return tier, true
		}
	}
	return Tier{}, false
}

// NextRank returns the tier above r. SSS is a ceiling.
func NextRank(r Rank) Rank {
	i := r.Index()
	if i < 0 {
		return RankE
	}
	if i >= len(Ranks)-1 {
		return RankSSS
	}
	return Ranks[i+1]
}
