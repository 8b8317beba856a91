package routes

import (
	adminapi "fitness-app/internal/api/admin"
	authapi "fitness-app/internal/api/auth"
	"fitness-app/internal/api/billing"
	blogapi "fitness-app/internal/api/blog"
	communityapi "fitness-app/internal/api/community"
	"fitness-app/internal/api/notifications"
	nutritionapi "fitness-app/internal/api/nutrition"
	progressapi "fitness-app/internal/api/progress"
	stripewebhooks "fitness-app/internal/api/stripewebhook"
	"fitness-app/internal/api/users"
	workoutsapi "fitness-app/internal/api/workouts"
	"fitness-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", authapi.VerifyEmail)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.GET("/plans", billing.ListPlans)

	// Blog is readable without an account; drafts never leave the admin routes.
	public.GET("/blog", blogapi.ListPosts)
	public.GET("/blog/:slug", blogapi.GetPostBySlug)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.PUT("/me/profile", users.UpdateProfile)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.POST("/create-checkout-session", billing.CreateCheckoutSession)
	auth.POST("/billing-portal", billing.CreateBillingPortal)
	auth.GET("/subscription", billing.GetSubscription)

	auth.GET("/workouts", workoutsapi.ListWorkouts)
	auth.GET("/workouts/:id", workoutsapi.GetWorkout)
	auth.POST("/workouts/:id/save", workoutsapi.SaveWorkout)
	auth.DELETE("/workouts/:id/save", workoutsapi.UnsaveWorkout)
	auth.GET("/workouts/saved", workoutsapi.ListSavedWorkouts)

	auth.GET("/nutrition", nutritionapi.ListPlans)
	auth.GET("/nutrition/:id", nutritionapi.GetPlan)
	auth.POST("/nutrition/:id/save", nutritionapi.SavePlan)
	auth.DELETE("/nutrition/:id/save", nutritionapi.UnsavePlan)
	auth.GET("/nutrition/saved", nutritionapi.ListSavedPlans)

	auth.GET("/community/feed", communityapi.GetFeed)
	auth.POST("/community/posts", communityapi.CreatePost)
	auth.PUT("/community/posts/:id", communityapi.EditPost)
	auth.DELETE("/community/posts/:id", communityapi.DeletePost)
	auth.POST("/community/posts/:id/like", communityapi.ToggleLike)
	auth.GET("/community/posts/:id/comments", communityapi.ListComments)
	auth.POST("/community/posts/:id/comments", communityapi.CreateComment)
	auth.DELETE("/community/comments/:id", communityapi.DeleteComment)

	auth.GET("/progress/goal", progressapi.GetGoal)
	auth.PUT("/progress/goal", progressapi.UpsertGoal)
	auth.PUT("/progress/today", progressapi.UpsertToday)
	auth.GET("/progress/week", progressapi.GetWeeklySummary)

	// websocket change feed; the JWT travels as ?token= on this route
	auth.GET("/ws", notifications.Subscribe)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.PUT("/user/:id/role", adminapi.UpdateUserRole)
	admin.DELETE("/user/:id", adminapi.DeleteUser)

	admin.POST("/workouts", workoutsapi.CreateWorkout)
	admin.PUT("/workouts/:id", workoutsapi.UpdateWorkout)
	admin.DELETE("/workouts/:id", workoutsapi.DeleteWorkout)

	admin.POST("/nutrition", nutritionapi.CreatePlan)
	admin.PUT("/nutrition/:id", nutritionapi.UpdatePlan)
	admin.DELETE("/nutrition/:id", nutritionapi.DeletePlan)

	admin.GET("/blog", blogapi.ListAllPosts)
	admin.POST("/blog", blogapi.CreatePost)
	admin.PUT("/blog/:id", blogapi.UpdatePost)
	admin.DELETE("/blog/:id", blogapi.DeletePost)

	// moderation reuses the author-or-admin community handlers
	admin.DELETE("/community/posts/:id", communityapi.DeletePost)
	admin.DELETE("/community/comments/:id", communityapi.DeleteComment)

	admin.GET("/reports", adminapi.GetReportSummary)
	admin.GET("/reports/export.csv", adminapi.ExportReportCSV)
	admin.GET("/reports/export.xlsx", adminapi.ExportReportXLSX)
	admin.GET("/reports/export.pdf", adminapi.ExportReportPDF)

	admin.POST("/sync-plans", billing.SyncPlansFromStripe)
}
