package community

import (
	"sort"
	"strings"

	"fitness-app/internal/domain/users"
)

const (
	SortNewest  = "newest"
	SortPopular = "popular"
)

// Popularity is the engagement count used by the "popular" sort.
func Popularity(p Post) int {
	return len(p.Likes) + len(p.Comments)
}

// SortPosts orders the already-fetched feed. "newest" trusts the database
// order. "popular" re-sorts by engagement descending; equal counts keep
// their relative arrival order.
func SortPosts(posts []Post, mode string) []Post {
	if mode != SortPopular {
		return posts
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return Popularity(posts[i]) > Popularity(posts[j])
	})
	return posts
}

// FilterPosts applies the case-insensitive substring search (post text or
// resolved author name) intersected with an optional exact-tag filter, over
// the already-sorted slice.
func FilterPosts(posts []Post, profiles map[uint]users.Profile, search, tag string) []Post {
	search = strings.ToLower(strings.TrimSpace(search))
	tag = strings.TrimSpace(tag)

	if search == "" && tag == "" {
		return posts
	}

	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if search != "" && !matchesSearch(p, profiles, search) {
			continue
		}
		if tag != "" && !hasTag(p, tag) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p Post, profiles map[uint]users.Profile, search string) bool {
	if strings.Contains(strings.ToLower(p.Text), search) {
		return true
	}
	if profile, ok := profiles[p.AuthorID]; ok {
		return strings.Contains(strings.ToLower(profile.DisplayName), search)
	}
	return false
}

func hasTag(p Post, tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// LikeIndex reports which of the given posts the user has already liked,
// from the loaded rows (not a separate query).
func LikeIndex(posts []Post, userID uint) map[uint]bool {
	liked := make(map[uint]bool)
	for _, p := range posts {
		for _, l := range p.Likes {
			if l.UserID == userID {
				liked[p.ID] = true
				break
			}
		}
	}
	return liked
}
