package engine

// Achievement represents a badge the user can earn. Achievements are derived
// from a snapshot on demand and never stored.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker calculates which achievements a snapshot has earned.
type AchievementChecker struct {
	stats UserStats
	paths []Path
}

func NewAchievementChecker(s Snapshot) *AchievementChecker {
	return &AchievementChecker{stats: s.UserStats, paths: s.Paths}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		// Task completion milestones
		c.taskCountAchievement("first_task", "First Step", "Complete 1 task", "✓", 1),
		c.taskCountAchievement("productive", "Productive", "Complete 10 tasks", "📋", 10),
		c.taskCountAchievement("achiever", "Achiever", "Complete 50 tasks", "🏅", 50),
		c.taskCountAchievement("powerhouse", "Powerhouse", "Complete 100 tasks", "🏆", 100),

		// Paths
		c.pathCountAchievement("first_path", "Pathfinder", "Create a path", "🧭", 1),
		c.pathCountAchievement("multi_path", "Polymath", "Create 3 paths", "🗺️", 3),

		// Streaks
		c.streakAchievement("week_streak", "Consistent", "Reach a 7 day streak", "🔥", 7),
		c.streakAchievement("month_streak", "Unbreakable", "Reach a 30 day streak", "☄️", 30),

		// Ranks
		c.rankAchievement("rank_c", "Awakened", "Reach overall rank C", "🌱", RankC),
		c.rankAchievement("rank_a", "Elite Hunter", "Reach overall rank A", "⭐", RankA),
		c.rankAchievement("rank_s", "National Level", "Reach overall rank S", "💫", RankS),
		c.attributeRankAchievement("specialist", "Specialist", "Any attribute at rank B", "🎯", RankB),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

// CountTotal returns total number of achievements.
func (c *AchievementChecker) CountTotal() int {
	return len(c.GetAchievements())
}

func (c *AchievementChecker) taskCountAchievement(id, name, desc, icon string, count int) Achievement {
	earned := c.stats.Statistics.TasksCompleted >= count
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) pathCountAchievement(id, name, desc, icon string, count int) Achievement {
	earned := c.stats.Statistics.PathsCreated >= count
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) streakAchievement(id, name, desc, icon string, days int) Achievement {
	best := c.stats.Statistics.LongestStreak
	for _, p := range c.paths {
		if p.Streak > best {
			best = p.Streak
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: best >= days}
}

func (c *AchievementChecker) rankAchievement(id, name, desc, icon string, r Rank) Achievement {
	earned := !c.stats.OverallRank.Less(r)
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) attributeRankAchievement(id, name, desc, icon string, r Rank) Achievement {
	earned := false
	for _, a := range AllAttributes {
		if !AttributeRanks.RankFor(c.stats.Attributes[a]).Less(r) {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}
