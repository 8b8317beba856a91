package community

import "time"

type AuthorDTO struct {
	ID          uint    `json:"id"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	Author    AuthorDTO `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedPostDTO struct {
	ID            uint         `json:"id"`
	Author        AuthorDTO    `json:"author"`
	Text          string       `json:"text"`
	ImageURL      *string      `json:"image_url,omitempty"`
	Tags          []string     `json:"tags,omitempty"`
	LikeCount     int          `json:"like_count"`
	CommentCount  int          `json:"comment_count"`
	LikedByCaller bool         `json:"liked_by_caller"`
	Comments      []CommentDTO `json:"comments"`
	CreatedAt     time.Time    `json:"created_at"`
	EditedAt      *time.Time   `json:"edited_at,omitempty"`
}

type FeedResponse struct {
	Posts []FeedPostDTO `json:"posts"`
	Sort  string        `json:"sort"`
}
