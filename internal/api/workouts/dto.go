package workouts

type WorkoutCardDTO struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	Level           string   `json:"level"`
	GoalTag         string   `json:"goal_tag"`
	DurationMinutes int      `json:"duration_minutes"`
	ImageURL        *string  `json:"image_url,omitempty"`
	Tags            []string `json:"tags,omitempty"`

	// Locked cards render a gated teaser; description and video stay hidden.
	Locked bool `json:"locked"`
}

type WorkoutDetailDTO struct {
	WorkoutCardDTO
	Description string  `json:"description"`
	VideoURL    *string `json:"video_url,omitempty"`
	Saved       bool    `json:"saved"`
}

type WorkoutListResponse struct {
	Workouts []WorkoutCardDTO `json:"workouts"`
	Limit    int              `json:"limit"`
}

type WorkoutInput struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category" binding:"required"`
	Level           string   `json:"level" binding:"required"`
	GoalTag         string   `json:"goal_tag"`
	DurationMinutes int      `json:"duration_minutes"`
	VideoURL        *string  `json:"video_url"`
	ImageURL        *string  `json:"image_url"`
	Tags            []string `json:"tags"`
}
