package reports

import (
	"sort"
	"time"

	"fitness-app/internal/domain/progress"
)

const (
	// TopN bounds every "most ..." list on the admin dashboard.
	TopN = 5

	// maxLabelRunes is where long titles get elided on charts and exports.
	maxLabelRunes = 30
)

type RankedItem struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Summary struct {
	TotalUsers    int `json:"total_users"`
	AdminUsers    int `json:"admin_users"`
	RecentSignups int `json:"recent_signups"`

	ActiveSubscriptions int `json:"active_subscriptions"`
	ProSubscriptions    int `json:"pro_subscriptions"`

	TotalWorkouts       int `json:"total_workouts"`
	TotalNutritionPlans int `json:"total_nutrition_plans"`
	TotalBlogPosts      int `json:"total_blog_posts"`
	TotalCommunityPosts int `json:"total_community_posts"`
	TotalComments       int `json:"total_comments"`

	TopWorkouts       []RankedItem `json:"top_workouts"`
	TopNutritionPlans []RankedItem `json:"top_nutrition_plans"`
	TopContributors   []RankedItem `json:"top_contributors"`

	SignupSeries []DayCount `json:"signup_series"`
	PostSeries   []DayCount `json:"post_series"`
}

// ElideLabel shortens long titles for chart axes and export columns.
func ElideLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= maxLabelRunes {
		return s
	}
	return string(runes[:maxLabelRunes]) + "…"
}

// CountSince counts timestamps within the last `days` calendar days.
func CountSince(now time.Time, stamps []time.Time, days int) int {
	cutoff := now.AddDate(0, 0, -days)
	n := 0
	for _, ts := range stamps {
		if ts.After(cutoff) {
			n++
		}
	}
	return n
}

// TopLabels groups a denormalized label-per-row slice, counts, sorts
// descending and truncates to TopN. Ties keep first-appearance order.
func TopLabels(labels []string) []RankedItem {
	counts := make(map[string]int)
	var order []string
	for _, l := range labels {
		if _, seen := counts[l]; !seen {
			order = append(order, l)
		}
		counts[l]++
	}

	items := make([]RankedItem, 0, len(order))
	for _, l := range order {
		items = append(items, RankedItem{Label: ElideLabel(l), Count: counts[l]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})

	if len(items) > TopN {
		items = items[:TopN]
	}
	return items
}

// DaySeries buckets timestamps into the last `days` calendar days, oldest
// first. Days with no activity appear as explicit zero entries.
func DaySeries(now time.Time, stamps []time.Time, days int) []DayCount {
	series := make([]DayCount, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -(days - 1 - i)).Format(progress.DateLayout)
		series[i] = DayCount{Date: day}
		index[day] = i
	}

	for _, ts := range stamps {
		if i, ok := index[ts.Format(progress.DateLayout)]; ok {
			series[i].Count++
		}
	}
	return series
}
