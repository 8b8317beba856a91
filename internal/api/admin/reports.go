package admin

import (
	"net/http"
	"time"

	"fitness-app/database"
	"fitness-app/internal/domain/blog"
	"fitness-app/internal/domain/community"
	"fitness-app/internal/domain/content"
	"fitness-app/internal/domain/reports"
	"fitness-app/internal/domain/subscriptions"
	"fitness-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

const seriesDays = 7

// GetReportSummary builds the dashboard read model in one shot. Row volumes
// are small enough that counting in Go keeps the aggregation testable.
func GetReportSummary(c *gin.Context) {
	summary, err := buildReportSummary(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func buildReportSummary(now time.Time) (*reports.Summary, error) {
	var s reports.Summary

	var counts = []struct {
		model any
		dst   *int
	}{
		{&content.Workout{}, &s.TotalWorkouts},
		{&content.NutritionPlan{}, &s.TotalNutritionPlans},
		{&blog.BlogPost{}, &s.TotalBlogPosts},
		{&community.Post{}, &s.TotalCommunityPosts},
		{&community.Comment{}, &s.TotalComments},
	}
	for _, cnt := range counts {
		var n int64
		if err := database.DB.Model(cnt.model).Count(&n).Error; err != nil {
			return nil, err
		}
		*cnt.dst = int(n)
	}

	var allUsers []users.User
	if err := database.DB.Find(&allUsers).Error; err != nil {
		return nil, err
	}
	s.TotalUsers = len(allUsers)
	signupStamps := make([]time.Time, 0, len(allUsers))
	for _, u := range allUsers {
		signupStamps = append(signupStamps, u.CreatedAt)
		if u.Role == users.RoleAdmin {
			s.AdminUsers++
		}
	}
	s.RecentSignups = reports.CountSince(now, signupStamps, seriesDays)
	s.SignupSeries = reports.DaySeries(now, signupStamps, seriesDays)

	var subs []subscriptions.Subscription
	if err := database.DB.Find(&subs).Error; err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if sub.Active(now) {
			s.ActiveSubscriptions++
			if sub.PlanTag == subscriptions.TierPremium {
				s.ProSubscriptions++
			}
		}
	}

	topWorkouts, err := savedTitles("saved_workouts", "workouts", "workout_id")
	if err != nil {
		return nil, err
	}
	s.TopWorkouts = reports.TopLabels(topWorkouts)

	topPlans, err := savedTitles("saved_nutrition_plans", "nutrition_plans", "nutrition_plan_id")
	if err != nil {
		return nil, err
	}
	s.TopNutritionPlans = reports.TopLabels(topPlans)

	contributors, postStamps, err := communityActivity()
	if err != nil {
		return nil, err
	}
	s.TopContributors = reports.TopLabels(contributors)
	s.PostSeries = reports.DaySeries(now, postStamps, seriesDays)

	return &s, nil
}

// savedTitles returns one title per bookmark row so TopLabels can count them.
func savedTitles(joinTable, contentTable, fkColumn string) ([]string, error) {
	var titles []string
	err := database.DB.
		Table(joinTable).
		Select(contentTable+".title").
		Joins("JOIN "+contentTable+" ON "+contentTable+".id = "+joinTable+"."+fkColumn).
		Pluck(contentTable+".title", &titles).Error
	return titles, err
}

// communityActivity returns one display name per post, plus each post's
// creation time for the activity series.
func communityActivity() ([]string, []time.Time, error) {
	var posts []community.Post
	if err := database.DB.Find(&posts).Error; err != nil {
		return nil, nil, err
	}

	ids := make([]uint, 0, len(posts))
	seen := make(map[uint]struct{})
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			ids = append(ids, p.AuthorID)
		}
	}

	names := make(map[uint]string, len(ids))
	if len(ids) > 0 {
		var profiles []users.Profile
		if err := database.DB.Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
			return nil, nil, err
		}
		for _, p := range profiles {
			names[p.UserID] = p.DisplayName
		}
	}

	labels := make([]string, 0, len(posts))
	stamps := make([]time.Time, 0, len(posts))
	for _, p := range posts {
		name := names[p.AuthorID]
		if name == "" {
			name = "Deleted user"
		}
		labels = append(labels, name)
		stamps = append(stamps, p.CreatedAt)
	}
	return labels, stamps, nil
}
