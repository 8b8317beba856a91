package community

import (
	"time"

	"gorm.io/datatypes"

	"fitness-app/internal/domain/users"
)

type Post struct {
	ID       uint `gorm:"primaryKey"`
	AuthorID uint `gorm:"index:idx_community_posts_author_id"`
	Text     string
	ImageURL *string
	Tags     datatypes.JSONSlice[string]

	Likes    []Like    `gorm:"constraint:OnDelete:CASCADE"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE"`

	EditedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID       uint `gorm:"primaryKey"`
	PostID   uint `gorm:"index:idx_comments_post_id"`
	AuthorID uint `gorm:"index:idx_comments_author_id"`
	Text     string

	CreatedAt time.Time
}

// Like has no unique (user, post) constraint; the handler checks existence
// before insert, so concurrent double-clicks can still duplicate a row.
type Like struct {
	ID     uint `gorm:"primaryKey"`
	PostID uint `gorm:"index:idx_likes_post_id"`
	UserID uint `gorm:"index:idx_likes_user_id"`

	CreatedAt time.Time
}

// ProfilesByID builds the author lookup used to resolve display names and
// avatars at render time. Never persisted.
func ProfilesByID(profiles []users.Profile) map[uint]users.Profile {
	index := make(map[uint]users.Profile, len(profiles))
	for _, p := range profiles {
		index[p.UserID] = p
	}
	return index
}

// AuthorIDs collects the distinct author set across posts and their comments.
func AuthorIDs(posts []Post) []uint {
	seen := make(map[uint]struct{})
	var ids []uint
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			ids = append(ids, p.AuthorID)
		}
		for _, c := range p.Comments {
			if _, ok := seen[c.AuthorID]; !ok {
				seen[c.AuthorID] = struct{}{}
				ids = append(ids, c.AuthorID)
			}
		}
	}
	return ids
}
