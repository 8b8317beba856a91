package blog

import (
	"net/http"
	"time"

	"fitness-app/database"
	blogdomain "fitness-app/internal/domain/blog"
	"fitness-app/internal/infra/notify"

	"github.com/gin-gonic/gin"
)

type PostCardDTO struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Category      string     `json:"category"`
	AuthorName    string     `json:"author_name"`
	CoverImageURL *string    `json:"cover_image_url,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

type PostDetailDTO struct {
	PostCardDTO
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
}

type PostInput struct {
	Title         string  `json:"title" binding:"required"`
	Content       string  `json:"content"`
	Excerpt       string  `json:"excerpt"`
	Category      string  `json:"category"`
	AuthorName    string  `json:"author_name"`
	CoverImageURL *string `json:"cover_image_url"`
	Publish       bool    `json:"publish"`
}

func toCard(p blogdomain.BlogPost) PostCardDTO {
	return PostCardDTO{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Category:      p.Category,
		AuthorName:    p.AuthorName,
		CoverImageURL: p.CoverImageURL,
		PublishedAt:   p.PublishedAt,
	}
}

// GET /blog (public listing, drafts excluded)
func ListPosts(c *gin.Context) {
	q := database.DB.Where("published_at IS NOT NULL")
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var posts []blogdomain.BlogPost
	if err := q.Order("published_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blog posts"})
		return
	}

	out := make([]PostCardDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toCard(p))
	}
	c.JSON(http.StatusOK, gin.H{"posts": out})
}

// GET /blog/:slug
func GetPostBySlug(c *gin.Context) {
	var post blogdomain.BlogPost
	if err := database.DB.
		Where("slug = ? AND published_at IS NOT NULL", c.Param("slug")).
		First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	html, err := blogdomain.RenderHTML(post.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render post"})
		return
	}

	c.JSON(http.StatusOK, PostDetailDTO{
		PostCardDTO: toCard(post),
		Content:     post.Content,
		ContentHTML: html,
	})
}

/* ---------------- admin CRUD ---------------- */

// GET /admin/blog (drafts included)
func ListAllPosts(c *gin.Context) {
	var posts []blogdomain.BlogPost
	if err := database.DB.Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blog posts"})
		return
	}

	out := make([]PostCardDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toCard(p))
	}
	c.JSON(http.StatusOK, gin.H{"posts": out})
}

// POST /admin/blog
func CreatePost(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := blogdomain.BlogPost{
		Title:         input.Title,
		Content:       input.Content,
		Excerpt:       input.Excerpt,
		Category:      input.Category,
		AuthorName:    input.AuthorName,
		CoverImageURL: input.CoverImageURL,
	}
	if input.Publish {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	// slug needs the row id, so it is an UPDATE after Create
	if _, err := blogdomain.EnsureSlug(database.DB, &post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
		return
	}

	notify.Broadcast("blog_posts", notify.ActionInsert)
	c.JSON(http.StatusCreated, gin.H{"id": post.ID, "slug": post.Slug})
}

// PUT /admin/blog/:id
func UpdatePost(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post blogdomain.BlogPost
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	post.Title = input.Title
	post.Content = input.Content
	post.Excerpt = input.Excerpt
	post.Category = input.Category
	post.AuthorName = input.AuthorName
	post.CoverImageURL = input.CoverImageURL

	if input.Publish && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	if !input.Publish {
		post.PublishedAt = nil
	}

	if err := database.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	notify.Broadcast("blog_posts", notify.ActionUpdate)
	c.JSON(http.StatusOK, gin.H{"message": "Post updated"})
}

// DELETE /admin/blog/:id
func DeletePost(c *gin.Context) {
	if err := database.DB.Delete(&blogdomain.BlogPost{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	notify.Broadcast("blog_posts", notify.ActionDelete)
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
