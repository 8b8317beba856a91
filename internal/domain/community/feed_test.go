package community

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-app/internal/domain/users"
)

func postWithEngagement(id uint, likes, comments int) Post {
	p := Post{ID: id}
	for i := 0; i < likes; i++ {
		p.Likes = append(p.Likes, Like{PostID: id})
	}
	for i := 0; i < comments; i++ {
		p.Comments = append(p.Comments, Comment{PostID: id})
	}
	return p
}

func TestSortPopularOrdersByEngagementDescending(t *testing.T) {
	posts := []Post{
		postWithEngagement(1, 1, 0),
		postWithEngagement(2, 5, 2),
		postWithEngagement(3, 3, 0),
	}

	sorted := SortPosts(posts, SortPopular)

	assert.Equal(t, uint(2), sorted[0].ID)
	assert.Equal(t, uint(3), sorted[1].ID)
	assert.Equal(t, uint(1), sorted[2].ID)
}

func TestSortPopularTiesKeepArrivalOrder(t *testing.T) {
	posts := []Post{
		postWithEngagement(10, 2, 0),
		postWithEngagement(11, 1, 1),
		postWithEngagement(12, 0, 2),
		postWithEngagement(13, 5, 0),
	}

	sorted := SortPosts(posts, SortPopular)

	// 13 leads; the three tied posts keep their pre-sort order.
	want := []uint{13, 10, 11, 12}
	for i, p := range sorted {
		assert.Equal(t, want[i], p.ID, "position %d", i)
	}
}

func TestSortNewestTrustsDatabaseOrder(t *testing.T) {
	posts := []Post{{ID: 3}, {ID: 2}, {ID: 1}}
	sorted := SortPosts(posts, SortNewest)
	assert.Equal(t, []Post{{ID: 3}, {ID: 2}, {ID: 1}}, sorted)
}

func TestFilterPostsSearchIsCaseInsensitive(t *testing.T) {
	posts := []Post{
		{ID: 1, Text: "Crushed my LEG DAY today"},
		{ID: 2, Text: "rest day thoughts"},
	}

	got := FilterPosts(posts, nil, "leg day", "")

	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}

func TestFilterPostsMatchesResolvedAuthorName(t *testing.T) {
	posts := []Post{
		{ID: 1, AuthorID: 7, Text: "morning run"},
		{ID: 2, AuthorID: 8, Text: "morning run"},
	}
	profiles := map[uint]users.Profile{
		7: {UserID: 7, DisplayName: "Alex Carter"},
		8: {UserID: 8, DisplayName: "Sam Reed"},
	}

	got := FilterPosts(posts, profiles, "carter", "")

	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}

func TestFilterPostsIntersectsSearchAndTag(t *testing.T) {
	posts := []Post{
		{ID: 1, Text: "new PR on deadlift", Tags: []string{"strength"}},
		{ID: 2, Text: "new PR on squat", Tags: []string{"cardio"}},
		{ID: 3, Text: "easy jog", Tags: []string{"strength"}},
	}

	got := FilterPosts(posts, nil, "new pr", "strength")

	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}

func TestAuthorIDsDeduplicatesAcrossPostsAndComments(t *testing.T) {
	posts := []Post{
		{ID: 1, AuthorID: 5, Comments: []Comment{{AuthorID: 6}, {AuthorID: 5}}},
		{ID: 2, AuthorID: 6},
	}

	ids := AuthorIDs(posts)

	assert.ElementsMatch(t, []uint{5, 6}, ids)
}

func TestLikeIndex(t *testing.T) {
	posts := []Post{
		{ID: 1, Likes: []Like{{UserID: 9}, {UserID: 4}}},
		{ID: 2, Likes: []Like{{UserID: 4}}},
	}

	liked := LikeIndex(posts, 9)

	assert.True(t, liked[1])
	assert.False(t, liked[2])
}
