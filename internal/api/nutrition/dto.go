package nutrition

import "encoding/json"

type PlanCardDTO struct {
	ID             uint     `json:"id"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	GoalTag        string   `json:"goal_tag"`
	CaloriesPerDay int      `json:"calories_per_day"`
	ImageURL       *string  `json:"image_url,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Locked         bool     `json:"locked"`
}

type PlanDetailDTO struct {
	PlanCardDTO
	Description string          `json:"description"`
	Meals       json.RawMessage `json:"meals,omitempty"`
	Macros      json.RawMessage `json:"macros,omitempty"`
	Saved       bool            `json:"saved"`
}

type PlanListResponse struct {
	Plans []PlanCardDTO `json:"plans"`
	Limit int           `json:"limit"`
}

type PlanInput struct {
	Title          string          `json:"title" binding:"required"`
	Description    string          `json:"description"`
	Category       string          `json:"category" binding:"required"`
	GoalTag        string          `json:"goal_tag"`
	CaloriesPerDay int             `json:"calories_per_day"`
	ImageURL       *string         `json:"image_url"`
	Tags           []string        `json:"tags"`
	Meals          json.RawMessage `json:"meals"`
	Macros         json.RawMessage `json:"macros"`
}
