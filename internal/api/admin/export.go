package admin

import (
	"fmt"
	"strconv"
	"time"

	"fitness-app/internal/domain/reports"
)

// reportRows flattens the dashboard summary into label/value rows shared by
// every export format.
func reportRows(s *reports.Summary) [][]string {
	rows := [][]string{
		{"Metric", "Value"},
		{"Total users", strconv.Itoa(s.TotalUsers)},
		{"Admin users", strconv.Itoa(s.AdminUsers)},
		{"Signups (last 7 days)", strconv.Itoa(s.RecentSignups)},
		{"Active subscriptions", strconv.Itoa(s.ActiveSubscriptions)},
		{"Premium subscriptions", strconv.Itoa(s.ProSubscriptions)},
		{"Workouts", strconv.Itoa(s.TotalWorkouts)},
		{"Nutrition plans", strconv.Itoa(s.TotalNutritionPlans)},
		{"Blog posts", strconv.Itoa(s.TotalBlogPosts)},
		{"Community posts", strconv.Itoa(s.TotalCommunityPosts)},
		{"Comments", strconv.Itoa(s.TotalComments)},
	}

	rows = append(rows, rankedRows("Top saved workouts", s.TopWorkouts)...)
	rows = append(rows, rankedRows("Top saved nutrition plans", s.TopNutritionPlans)...)
	rows = append(rows, rankedRows("Top contributors", s.TopContributors)...)
	rows = append(rows, seriesRows("Signups per day", s.SignupSeries)...)
	rows = append(rows, seriesRows("Community posts per day", s.PostSeries)...)

	return rows
}

func rankedRows(header string, items []reports.RankedItem) [][]string {
	rows := [][]string{{header, ""}}
	for i, item := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d. %s", i+1, item.Label),
			strconv.Itoa(item.Count),
		})
	}
	return rows
}

func seriesRows(header string, series []reports.DayCount) [][]string {
	rows := [][]string{{header, ""}}
	for _, day := range series {
		rows = append(rows, []string{day.Date, strconv.Itoa(day.Count)})
	}
	return rows
}

func exportFilename(ext string) string {
	return "fitness-report-" + time.Now().Format("2006-01-02") + "." + ext
}
