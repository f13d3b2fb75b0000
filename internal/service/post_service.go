package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "guestbook/internal/errors"
	"guestbook/internal/model"
	"guestbook/internal/repository"
)

// PostService handles guest book posts and their comments.
type PostService interface {
	Publish(ctx context.Context, userID uuid.UUID, image, description string) (*model.Post, error)
	AddComment(ctx context.Context, postID, userID uuid.UUID, comment string) (*model.Post, error)
	ApprovedPosts(ctx context.Context) ([]model.Post, error)
	AllPosts(ctx context.Context) ([]model.Post, error)
	AllComments(ctx context.Context) ([]model.Comment, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error
	DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error
}

type postService struct {
	posts repository.PostRepository
}

// NewPostService creates the post service.
func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

// Publish creates a new post in Pending state awaiting moderation.
func (s *postService) Publish(ctx context.Context, userID uuid.UUID, image, description string) (*model.Post, error) {
	post := &model.Post{
		Image:        image,
		Description:  description,
		Status:       model.StatusPending,
		UploadedByID: userID,
		Comments:     []model.Comment{},
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// AddComment attaches a Pending comment to an existing post.
func (s *postService) AddComment(ctx context.Context, postID, userID uuid.UUID, comment string) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New("Post not found.", http.StatusNotFound)
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	c := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Comment: comment,
		Status:  model.StatusPending,
	}
	if err := s.posts.AddComment(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	post.Comments = append(post.Comments, *c)
	return post, nil
}

func (s *postService) ApprovedPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.posts.FindApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list approved posts: %w", err)
	}
	return posts, nil
}

func (s *postService) AllPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *postService) AllComments(ctx context.Context) ([]model.Comment, error) {
	comments, err := s.posts.FindAllComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *postService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New("Post not found.", http.StatusNotFound)
		}
		return fmt.Errorf("find post: %w", err)
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *postService) DeleteComment(ctx context.Context, postID, commentID uuid.UUID) error {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New("Post not found.", http.StatusNotFound)
		}
		return fmt.Errorf("find post: %w", err)
	}
	if err := s.posts.DeleteComment(ctx, postID, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New("Comment not found.", http.StatusNotFound)
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
