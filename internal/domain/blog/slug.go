package blog

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from a post title.
// Example: "5 Morning Stretches!" -> "5-morning-stretches"
func MakeSlug(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "post"
	}
	return base
}

// EnsureSlug ensures post.Slug exists and is persisted. Uniqueness comes
// from the id suffix, so this must be called AFTER Create.
func EnsureSlug(db *gorm.DB, post *BlogPost) (string, error) {
	if post == nil {
		return "", fmt.Errorf("post is nil")
	}
	if strings.TrimSpace(post.Slug) != "" {
		return post.Slug, nil
	}
	if post.ID == 0 {
		return "", fmt.Errorf("post ID missing (call EnsureSlug after Create)")
	}

	slug := fmt.Sprintf("%s-%d", MakeSlug(post.Title), post.ID)
	post.Slug = slug

	if err := db.
		Model(&BlogPost{}).
		Where("id = ?", post.ID).
		Update("slug", slug).Error; err != nil {
		return "", err
	}

	return slug, nil
}
