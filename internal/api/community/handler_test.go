package community

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitness-app/database"
	"fitness-app/internal/domain/community"
	"fitness-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
}

func authedRequest(t *testing.T, userID uint, role, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	c.Set("user_id", userID)
	c.Set("role", role)
	return c, w
}

func seedFeed(t *testing.T) {
	t.Helper()
	require.NoError(t, database.DB.Create(&users.Profile{UserID: 1, DisplayName: "Alex"}).Error)
	require.NoError(t, database.DB.Create(&users.Profile{UserID: 2, DisplayName: "Bo"}).Error)

	require.NoError(t, database.DB.Create(&community.Post{AuthorID: 1, Text: "morning run done"}).Error)
	require.NoError(t, database.DB.Create(&community.Post{AuthorID: 2, Text: "meal prep sunday"}).Error)
	require.NoError(t, database.DB.Create(&community.Like{PostID: 1, UserID: 2}).Error)
	require.NoError(t, database.DB.Create(&community.Comment{PostID: 1, AuthorID: 2, Text: "nice pace"}).Error)
}

func TestToggleLikeAddsThenRemoves(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.DB.Create(&community.Post{AuthorID: 1, Text: "hello"}).Error)

	c, w := authedRequest(t, 2, users.RoleUser, http.MethodPost, "/community/posts/1/like")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	ToggleLike(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":true`)

	var count int64
	require.NoError(t, database.DB.Model(&community.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	c, w = authedRequest(t, 2, users.RoleUser, http.MethodPost, "/community/posts/1/like")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	ToggleLike(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":false`)

	require.NoError(t, database.DB.Model(&community.Like{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestToggleLikeSurfacesLookupFailure(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.DB.Create(&community.Post{AuthorID: 1, Text: "hello"}).Error)
	// A broken likes table must come back as a 500, not as a fresh like.
	require.NoError(t, database.DB.Migrator().DropTable(&community.Like{}))

	c, w := authedRequest(t, 2, users.RoleUser, http.MethodPost, "/community/posts/1/like")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	ToggleLike(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load like")
}

func TestToggleLikeUnknownPost(t *testing.T) {
	setupTestDB(t)

	c, w := authedRequest(t, 2, users.RoleUser, http.MethodPost, "/community/posts/99/like")
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	ToggleLike(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePostOnlyAuthorOrAdmin(t *testing.T) {
	setupTestDB(t)
	seedFeed(t)

	// a stranger cannot delete someone else's post
	c, w := authedRequest(t, 2, users.RoleUser, http.MethodDelete, "/community/posts/1")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	DeletePost(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// an admin can
	c, w = authedRequest(t, 2, users.RoleAdmin, http.MethodDelete, "/community/posts/1")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	DeletePost(c)
	require.Equal(t, http.StatusOK, w.Code)

	var posts, likes, comments int64
	database.DB.Model(&community.Post{}).Count(&posts)
	database.DB.Model(&community.Like{}).Where("post_id = ?", 1).Count(&likes)
	database.DB.Model(&community.Comment{}).Where("post_id = ?", 1).Count(&comments)
	assert.Equal(t, int64(1), posts)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
}

func TestDeleteCommentAuthorOrAdmin(t *testing.T) {
	setupTestDB(t)
	seedFeed(t)

	// user 1 did not write the comment and is not an admin
	c, w := authedRequest(t, 1, users.RoleUser, http.MethodDelete, "/community/comments/1")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	DeleteComment(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the comment author can remove it
	c, w = authedRequest(t, 2, users.RoleUser, http.MethodDelete, "/community/comments/1")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	DeleteComment(c)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, database.DB.Model(&community.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetFeedPopularOrderAndLikeFlag(t *testing.T) {
	setupTestDB(t)
	seedFeed(t)

	c, w := authedRequest(t, 2, users.RoleUser, http.MethodGet, "/community/feed?sort=popular")
	GetFeed(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp FeedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 2)

	// post 1 carries a like and a comment, so it outranks the newer post 2
	assert.Equal(t, uint(1), resp.Posts[0].ID)
	assert.Equal(t, 1, resp.Posts[0].LikeCount)
	assert.Equal(t, 1, resp.Posts[0].CommentCount)
	assert.True(t, resp.Posts[0].LikedByCaller)
	assert.False(t, resp.Posts[1].LikedByCaller)

	assert.Equal(t, "Alex", resp.Posts[0].Author.DisplayName)
	assert.Equal(t, "nice pace", resp.Posts[0].Comments[0].Text)
}

func TestGetFeedMissingProfileFallsBack(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.DB.Create(&community.Post{AuthorID: 42, Text: "ghost post"}).Error)

	c, w := authedRequest(t, 1, users.RoleUser, http.MethodGet, "/community/feed")
	GetFeed(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp FeedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "Deleted user", resp.Posts[0].Author.DisplayName)
}
