package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nird-backend/internal/domain"
	"nird-backend/internal/repository/models"
	"nird-backend/internal/util"
)

const selectBlogPostQuery = `SELECT
		id "id",
		title "title",
		content "content",
		excerpt "excerpt",
		category "category",
		author_id "author_id",
		status "status",
		gemini_verified "gemini_verified",
		upvote_count "upvote_count",
		created_at "created_at",
		updated_at "updated_at"
	FROM blog_posts
	WHERE title = ?`

const insertBlogPostQuery = `INSERT INTO blog_posts (id, title, content, excerpt, category, author_id, status, gemini_verified, upvote_count, created_at, updated_at)
	VALUES (:id, :title, :content, :excerpt, :category, :author_id, :status, :gemini_verified, :upvote_count, :created_at, :updated_at)`

// BlogPostDatabaseAdapter implements domain.BlogPostRepository
type BlogPostDatabaseAdapter struct {
	db DBTX
}

// NewBlogPostDatabaseAdapter creates a new instance of BlogPostDatabaseAdapter
func NewBlogPostDatabaseAdapter(db DBTX) domain.BlogPostRepository {
	return &BlogPostDatabaseAdapter{db: db}
}

// GetByTitle implements domain.BlogPostRepository
func (a *BlogPostDatabaseAdapter) GetByTitle(ctx context.Context, title string) (*domain.BlogPost, error) {
	exec := GetExecutor(ctx, a.db)

	var p models.BlogPost
	err := exec.GetContext(ctx, &p, exec.Rebind(selectBlogPostQuery), util.NormalizeKey(title))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blog post by title: %w", err)
	}
	return &domain.BlogPost{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		Excerpt:        util.NullStringToString(p.Excerpt),
		Category:       domain.BlogCategory(p.Category),
		AuthorID:       p.AuthorID,
		Status:         domain.BlogStatus(p.Status),
		GeminiVerified: p.GeminiVerified,
		UpvoteCount:    p.UpvoteCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}, nil
}

// SavePost implements domain.BlogPostRepository
func (a *BlogPostDatabaseAdapter) SavePost(ctx context.Context, post *domain.BlogPost) error {
	if err := post.Validate(); err != nil {
		return err
	}

	post.Title = util.NormalizeKey(post.Title)
	if post.ID == "" {
		post.ID = util.NewULID()
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	model := &models.BlogPost{
		ID:             post.ID,
		Title:          post.Title,
		Content:        post.Content,
		Excerpt:        util.StringToNullString(post.Excerpt),
		Category:       string(post.Category),
		AuthorID:       post.AuthorID,
		Status:         string(post.Status),
		GeminiVerified: post.GeminiVerified,
		UpvoteCount:    post.UpvoteCount,
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}
	if _, err := GetExecutor(ctx, a.db).NamedExecContext(ctx, insertBlogPostQuery, model); err != nil {
		return fmt.Errorf("failed to save blog post: %w", err)
	}
	return nil
}
