package domain

import (
	"context"
	"fmt"
	"time"
)

type BlogCategory string

const (
	BlogCategoryStories    BlogCategory = "stories"
	BlogCategoryTutorials  BlogCategory = "tutorials"
	BlogCategoryChallenges BlogCategory = "challenges"
	BlogCategoryNews       BlogCategory = "news"
)

func (c BlogCategory) Valid() bool {
	switch c {
	case BlogCategoryStories, BlogCategoryTutorials, BlogCategoryChallenges, BlogCategoryNews:
		return true
	}
	return false
}

type BlogStatus string

const (
	BlogStatusPending  BlogStatus = "pending"
	BlogStatusApproved BlogStatus = "approved"
	BlogStatusRejected BlogStatus = "rejected"
)

func (s BlogStatus) Valid() bool {
	switch s {
	case BlogStatusPending, BlogStatusApproved, BlogStatusRejected:
		return true
	}
	return false
}

// BlogPost is a community blog article
type BlogPost struct {
	ID             string
	Title          string
	Content        string
	Excerpt        string
	Category       BlogCategory
	AuthorID       string
	Status         BlogStatus
	GeminiVerified bool
	UpvoteCount    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewBlogPost creates a pending post by the given author
func NewBlogPost(title, content, excerpt string, category BlogCategory, authorID string) *BlogPost {
	now := time.Now()
	return &BlogPost{
		Title:     title,
		Content:   content,
		Excerpt:   excerpt,
		Category:  category,
		AuthorID:  authorID,
		Status:    BlogStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the blog post
func (p *BlogPost) Validate() error {
	if p.Title == "" {
		return NewValidationError("title is required")
	}
	if p.Content == "" {
		return NewValidationError("content is required")
	}
	if p.AuthorID == "" {
		return NewValidationError("author is required")
	}
	if !p.Category.Valid() {
		return NewValidationError(fmt.Sprintf("invalid category: %s", p.Category))
	}
	if !p.Status.Valid() {
		return NewValidationError(fmt.Sprintf("invalid status: %s", p.Status))
	}
	if p.UpvoteCount < 0 {
		return NewValidationError("upvote count cannot be negative")
	}
	return nil
}

// BlogPostRepository defines the interface for blog post persistence
type BlogPostRepository interface {
	// GetByTitle returns nil, nil when no post has that title.
	GetByTitle(ctx context.Context, title string) (*BlogPost, error)
	SavePost(ctx context.Context, post *BlogPost) error
}
