package progress

import "time"

type DayEntry struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	Workouts int    `json:"workouts"`
}

type WeeklySummary struct {
	Days []DayEntry `json:"days"`

	CaloriesToday     int     `json:"calories_today"`
	CaloriePct        float64 `json:"calorie_pct"`
	CaloriesRemaining int     `json:"calories_remaining"`

	WorkoutsThisWeek  int     `json:"workouts_this_week"`
	WorkoutPct        float64 `json:"workout_pct"`
	WorkoutsRemaining int     `json:"workouts_remaining"`
}

// Pct clamps to [0, 100] and never divides by a zero goal.
func Pct(actual, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	pct := float64(actual) / float64(goal) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Remaining is max(0, goal - actual); never negative.
func Remaining(goal, actual int) int {
	if r := goal - actual; r > 0 {
		return r
	}
	return 0
}

// Summarize derives the weekly read model from the last 7 days of entries
// and the user's current goal. Entries for days other than today only feed
// the workout total and the per-day series.
func Summarize(now time.Time, entries []DayEntry, goal UserGoal) WeeklySummary {
	today := now.Format(DateLayout)

	s := WeeklySummary{Days: entries}
	for _, e := range entries {
		s.WorkoutsThisWeek += e.Workouts
		if e.Date == today {
			s.CaloriesToday += e.Calories
		}
	}

	s.CaloriePct = Pct(s.CaloriesToday, goal.DailyCalorieTarget)
	s.CaloriesRemaining = Remaining(goal.DailyCalorieTarget, s.CaloriesToday)

	s.WorkoutPct = Pct(s.WorkoutsThisWeek, goal.WeeklyWorkoutTarget)
	s.WorkoutsRemaining = Remaining(goal.WeeklyWorkoutTarget, s.WorkoutsThisWeek)

	return s
}
