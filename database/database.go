package database

import (
	"log"
	"os"

	"fitness-app/internal/domain/blog"
	"fitness-app/internal/domain/community"
	"fitness-app/internal/domain/content"
	"fitness-app/internal/domain/progress"
	"fitness-app/internal/domain/subscriptions"
	"fitness-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	log.Println("Connected and migrated successfully")
}

// Migrate is split out so tests can run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&users.Profile{},
		&users.VerificationToken{},
		&subscriptions.Plan{},
		&subscriptions.Subscription{},

		// content libraries
		&content.Workout{},
		&content.SavedWorkout{},
		&content.NutritionPlan{},
		&content.SavedNutritionPlan{},

		// blog
		&blog.BlogPost{},

		// community
		&community.Post{},
		&community.Comment{},
		&community.Like{},

		// progress (current + legacy shapes)
		&progress.UserGoal{},
		&progress.ProgressLog{},
		&progress.DailyProgress{},
	)
}
