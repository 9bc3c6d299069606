package engine

func builtinTemplates() []Template {
	return []Template{
		{
			Key:              "gym",
			Name:             "Physical Mastery",
			Icon:             "💪",
			Color:            "from-red-600 to-orange-800",
			Attributes:       []Attribute{AttributePhysical, AttributeHealth, AttributeResilience},
			PrimaryAttribute: AttributePhysical,
			Titles:           []string{"Novice", "Athlete", "Elite"},
			Perk:             &Perk{Attribute: AttributePhysical, Percent: 10, Description: "+10% Physical gains"},
			Tasks: []TaskDefinition{
				{
					Name: "Workout Session", Frequency: FrequencyWeekly, TimesPerWeek: 4, XPReward: 15,
					AttributeRewards: map[Attribute]int{AttributePhysical: 2, AttributeHealth: 1, AttributeResilience: 1},
				},
				{
					Name: "Track Nutrition", Frequency: FrequencyDaily, XPReward: 5,
					AttributeRewards: map[Attribute]int{AttributeHealth: 1},
				},
				{
					Name: "Mobility Work", Frequency: FrequencyDaily, XPReward: 5,
					AttributeRewards: map[Attribute]int{AttributePhysical: 1},
				},
			},
		},
		{
			Key:              "study",
			Name:             "Scholar's Path",
			Icon:             "📚",
			Color:            "from-blue-600 to-indigo-800",
			Attributes:       []Attribute{AttributeIntelligence, AttributeResilience, AttributeCreativity},
			PrimaryAttribute: AttributeIntelligence,
			Titles:           []string{"Student", "Scholar", "Master"},
			Tasks: []TaskDefinition{
				{
					Name: "Deep Focus Session", Frequency: FrequencyDaily, XPReward: 10,
					AttributeRewards: map[Attribute]int{AttributeIntelligence: 2},
				},
				{
					Name: "Review & Practice", Frequency: FrequencyWeekly, TimesPerWeek: 3, XPReward: 20,
					AttributeRewards: map[Attribute]int{AttributeIntelligence: 2, AttributeResilience: 1},
				},
				{
					Name: "Knowledge Application", Frequency: FrequencyWeekly, TimesPerWeek: 2, XPReward: 15,
					AttributeRewards: map[Attribute]int{AttributeIntelligence: 1, AttributeCreativity: 1},
				},
			},
		},
		{
			Key:              "meditation",
			Name:             "Inner Path",
			Icon:             "🧘",
			Color:            "from-purple-600 to-pink-800",
			Attributes:       []Attribute{AttributeSpiritual, AttributeResilience, AttributeHealth, AttributeCreativity},
			PrimaryAttribute: AttributeSpiritual,
			Titles:           []string{"Seeker", "Practitioner", "Sage"},
			Tasks: []TaskDefinition{
				{
					Name: "Meditation Session", Frequency: FrequencyDaily, XPReward: 10,
					AttributeRewards: map[Attribute]int{AttributeSpiritual: 2, AttributeResilience: 1},
				},
				{
					Name: "Mindfulness Practice", Frequency: FrequencyDaily, XPReward: 5,
					AttributeRewards: map[Attribute]int{AttributeSpiritual: 1},
				},
				{
					Name: "Deep Reflection", Frequency: FrequencyWeekly, TimesPerWeek: 2, XPReward: 15,
					AttributeRewards: map[Attribute]int{AttributeSpiritual: 2, AttributeCreativity: 1},
				},
			},
		},
		{
			Key:              "creativity",
			Name:             "Artist's Way",
			Icon:             "🎨",
			Color:            "from-pink-600 to-rose-800",
			Attributes:       []Attribute{AttributeCreativity, AttributeIntelligence, AttributeSpiritual},
			PrimaryAttribute: AttributeCreativity,
			Titles:           []string{"Explorer", "Creator", "Visionary"},
			Tasks: []TaskDefinition{
				{
					Name: "Creative Session", Frequency: FrequencyDaily, XPReward: 10,
					AttributeRewards: map[Attribute]int{AttributeCreativity: 2},
				},
				{
					Name: "Skill Practice", Frequency: FrequencyWeekly, TimesPerWeek: 3, XPReward: 15,
					AttributeRewards: map[Attribute]int{AttributeCreativity: 2, AttributeIntelligence: 1},
				},
				{
					Name: "Project Work", Frequency: FrequencyWeekly, TimesPerWeek: 1, XPReward: 25,
					AttributeRewards: map[Attribute]int{AttributeCreativity: 3, AttributeSpiritual: 1},
				},
			},
		},
		{
			Key:              "football",
			Name:             "Jugador",
			Icon:             "⚽",
			Color:            "from-green-600 to-emerald-800",
			Attributes:       []Attribute{AttributePhysical, AttributeHealth, AttributeResilience},
			PrimaryAttribute: AttributePhysical,
			Titles:           []string{"Amateur", "Semi-Pro", "Pro", "World-Class"},
			Perk:             &Perk{Attribute: AttributePhysical, Percent: 10, Description: "+10% Physical XP from sports tasks"},
			Tasks: []TaskDefinition{
				{
					Name: "Technical Drill Session", Frequency: FrequencyDaily, XPReward: 10,
					AttributeRewards: map[Attribute]int{AttributePhysical: 2},
				},
				{
					Name: "Tactical Awareness Video", Frequency: FrequencyWeekly, TimesPerWeek: 2, XPReward: 10,
					AttributeRewards: map[Attribute]int{AttributeResilience: 1},
				},
				{
					Name: "Fitness Component", Frequency: FrequencyWeekly, TimesPerWeek: 3, XPReward: 15,
					AttributeRewards: map[Attribute]int{AttributePhysical: 1, AttributeHealth: 2},
				},
			},
		},
		{
			Key:              "chess",
			Name:             "Hunter's Mind",
			Icon:             "♟️",
			Color:            "from-purple-600 to-indigo-800",
			Attributes:       []Attribute{AttributeIntelligence, AttributeResilience, AttributeCreativity},
			PrimaryAttribute: AttributeIntelligence,
			Titles:           []string{"Student", "Strategist", "Mastermind"},
			Tasks: []TaskDefinition{
				{
					Name: "Tactical Puzzles", Frequency: FrequencyDaily, XPReward: 10,
					AttributeRewards: map[Attribute]int{AttributeIntelligence: 2},
				},
				{
					Name: "Standard or Blitz Game", Frequency: FrequencyWeekly, TimesPerWeek: 2, XPReward: 15,
					AttributeRewards: map[Attribute]int{AttributeIntelligence: 1, AttributeResilience: 1},
				},
				{
					Name: "Pro Match Analysis", Frequency: FrequencyWeekly, TimesPerWeek: 1, XPReward: 20,
					AttributeRewards: map[Attribute]int{AttributeIntelligence: 2, AttributeCreativity: 1},
				},
			},
		},
	}
}

// DefaultCatalog returns the built-in path templates.
func DefaultCatalog() Catalog {
	c, err := NewCatalog(builtinTemplates()...)
	if err != nil {
		panic("engine: invalid builtin template: " + err.Error())
	}
	return c
}
