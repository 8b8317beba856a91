package community

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fitness-app/database"
	"fitness-app/internal/domain/community"
	"fitness-app/internal/domain/users"
	"fitness-app/internal/infra/notify"
	"fitness-app/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Store is wired at startup; nil disables image uploads (tests).
var Store *storage.LocalStore

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("role") == users.RoleAdmin
}

func resolveAuthor(profiles map[uint]users.Profile, authorID uint) AuthorDTO {
	if p, ok := profiles[authorID]; ok {
		return AuthorDTO{ID: authorID, DisplayName: p.DisplayName, AvatarURL: p.AvatarURL}
	}
	return AuthorDTO{ID: authorID, DisplayName: "Deleted user"}
}

func loadProfiles(ids []uint) (map[uint]users.Profile, error) {
	if len(ids) == 0 {
		return map[uint]users.Profile{}, nil
	}
	var profiles []users.Profile
	if err := database.DB.Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return community.ProfilesByID(profiles), nil
}

// GET /community/feed?sort=newest|popular&search=&tag=
//
// One fetch for the posts (likes and comments nested), one batched fetch
// for every distinct author profile, then pure sort/filter over the slice.
func GetFeed(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	sortMode := c.DefaultQuery("sort", community.SortNewest)

	var posts []community.Post
	if err := database.DB.
		Preload("Likes").
		Preload("Comments").
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}

	profiles, err := loadProfiles(community.AuthorIDs(posts))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profiles"})
		return
	}

	posts = community.SortPosts(posts, sortMode)
	posts = community.FilterPosts(posts, profiles, c.Query("search"), c.Query("tag"))
	liked := community.LikeIndex(posts, userID)

	out := FeedResponse{Sort: sortMode, Posts: make([]FeedPostDTO, 0, len(posts))}
	for _, p := range posts {
		dto := FeedPostDTO{
			ID:            p.ID,
			Author:        resolveAuthor(profiles, p.AuthorID),
			Text:          p.Text,
			ImageURL:      p.ImageURL,
			Tags:          p.Tags,
			LikeCount:     len(p.Likes),
			CommentCount:  len(p.Comments),
			LikedByCaller: liked[p.ID],
			Comments:      make([]CommentDTO, 0, len(p.Comments)),
			CreatedAt:     p.CreatedAt,
			EditedAt:      p.EditedAt,
		}
		for _, cm := range p.Comments {
			dto.Comments = append(dto.Comments, CommentDTO{
				ID:        cm.ID,
				Author:    resolveAuthor(profiles, cm.AuthorID),
				Text:      cm.Text,
				CreatedAt: cm.CreatedAt,
			})
		}
		out.Posts = append(out.Posts, dto)
	}

	c.JSON(http.StatusOK, out)
}

// POST /community/posts (multipart: text, tags, optional image)
func CreatePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post text cannot be empty"})
		return
	}

	var tags []string
	for _, t := range strings.Split(c.PostForm("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	post := community.Post{
		AuthorID: userID,
		Text:     text,
		Tags:     tags,
	}

	// image goes to blob storage first; the row stores the public URL
	if file, err := c.FormFile("image"); err == nil && file != nil {
		if Store == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image uploads not configured"})
			return
		}
		url, err := Store.Save(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		post.ImageURL = &url
	}

	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	notify.Broadcast("community_posts", notify.ActionInsert)
	c.JSON(http.StatusCreated, gin.H{"id": post.ID})
}

// PUT /community/posts/:id
func EditPost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		Text string   `json:"text" binding:"required"`
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(input.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post text cannot be empty"})
		return
	}

	var post community.Post
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own posts"})
		return
	}

	now := time.Now()
	post.Text = strings.TrimSpace(input.Text)
	post.Tags = input.Tags
	post.EditedAt = &now

	if err := database.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	notify.Broadcast("community_posts", notify.ActionUpdate)
	c.JSON(http.StatusOK, gin.H{"message": "Post updated"})
}

// DELETE /community/posts/:id. Hard delete, no tombstone.
func DeletePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var post community.Post
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	database.DB.Where("post_id = ?", post.ID).Delete(&community.Like{})
	database.DB.Where("post_id = ?", post.ID).Delete(&community.Comment{})
	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if post.ImageURL != nil && Store != nil {
		Store.Delete(*post.ImageURL)
	}

	notify.Broadcast("community_posts", notify.ActionDelete)
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// DELETE /community/comments/:id
func DeleteComment(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var comment community.Comment
	if err := database.DB.First(&comment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.AuthorID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	notify.Broadcast("comments", notify.ActionDelete)
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// POST /community/posts/:id/like
//
// Toggle by existence check, the same read-modify-write the feed uses:
// two near-simultaneous requests can both observe "absent" and insert
// duplicate likes. There is deliberately no unique constraint backstop.
func ToggleLike(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var post community.Post
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing community.Like
	err := database.DB.
		Where("post_id = ? AND user_id = ?", post.ID, userID).
		First(&existing).Error

	switch {
	case err == nil:
		if err := database.DB.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove like"})
			return
		}
		notify.Broadcast("likes", notify.ActionDelete)
		c.JSON(http.StatusOK, gin.H{"liked": false})
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load like"})
		return
	}

	like := community.Like{PostID: post.ID, UserID: userID}
	if err := database.DB.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	notify.Broadcast("likes", notify.ActionInsert)
	c.JSON(http.StatusOK, gin.H{"liked": true})
}

// GET /community/posts/:id/comments
// Re-fetched per post independently of the parent feed refresh.
func ListComments(c *gin.Context) {
	var comments []community.Comment
	if err := database.DB.
		Where("post_id = ?", c.Param("id")).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		return
	}

	var ids []uint
	seen := map[uint]struct{}{}
	for _, cm := range comments {
		if _, ok := seen[cm.AuthorID]; !ok {
			seen[cm.AuthorID] = struct{}{}
			ids = append(ids, cm.AuthorID)
		}
	}
	profiles, err := loadProfiles(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profiles"})
		return
	}

	out := make([]CommentDTO, 0, len(comments))
	for _, cm := range comments {
		out = append(out, CommentDTO{
			ID:        cm.ID,
			Author:    resolveAuthor(profiles, cm.AuthorID),
			Text:      cm.Text,
			CreatedAt: cm.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"comments": out})
}

// POST /community/posts/:id/comments
func CreateComment(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(input.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment cannot be empty"})
		return
	}

	var post community.Post
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := community.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Text:     strings.TrimSpace(input.Text),
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	notify.Broadcast("comments", notify.ActionInsert)
	c.JSON(http.StatusCreated, gin.H{"id": comment.ID})
}
