package blog

import "time"

type BlogPost struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"not null"`
	Slug     string `gorm:"uniqueIndex:idx_blog_posts_slug"`
	Content  string
	Excerpt  string
	Category string `gorm:"index"`

	// Denormalized display string, not a foreign key.
	AuthorName string

	CoverImageURL *string

	// nil = draft, hidden from the public listing.
	PublishedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *BlogPost) Published() bool {
	return p.PublishedAt != nil
}
