package users

import "time"

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:"" json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`
	Role         string
	IsVerified   bool

	Profile *Profile

	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is the application-level user record, distinct from the auth row.
// One per user, created at signup.
type Profile struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_profiles_user_id"`
	DisplayName string
	Gender      *string
	HeightCM    *float64
	WeightKG    *float64
	GoalTag     *string `gorm:"column:goal_tag"`
	AvatarURL   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
