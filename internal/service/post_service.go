package service

import (
	"context"
	"net/url"
	"strings"

	"skillshare/internal/models"
	"skillshare/internal/repository"
)

type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

type CreatePostInput struct {
	UserID      string
	Description string
	MediaURL    string
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID string
	UserID        string
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *PostService {
	return &PostService{postRepo: postRepo, commentRepo: commentRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Description) == "" && in.MediaURL == "" {
		return nil, models.NewValidationError("A post needs a description or media")
	}
	if in.MediaURL != "" {
		u, err := url.Parse(in.MediaURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return nil, models.NewValidationError("Media URL must be an http(s) URL")
		}
	}

	post := &models.Post{
		UserID:      in.UserID,
		Description: in.Description,
		MediaURL:    in.MediaURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id, currentUserID string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	if in.UserID != "" {
		return s.postRepo.ListByUser(ctx, in.UserID, in.Limit, in.Offset, in.CurrentUserID)
	}
	return s.postRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *PostService) ListSavedPosts(ctx context.Context, userID string, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListSaved(ctx, userID, limit, offset)
}

// DeletePost removes a post. Only the author may delete it.
func (s *PostService) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID, "")
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("Only the author can delete this post")
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *PostService) LikePost(ctx context.Context, userID, postID string) error {
	if _, err := s.postRepo.GetByID(ctx, postID, ""); err != nil {
		return err
	}
	return s.postRepo.Like(ctx, userID, postID)
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID string) error {
	return s.postRepo.Unlike(ctx, userID, postID)
}

func (s *PostService) SavePost(ctx context.Context, userID, postID string) error {
	if _, err := s.postRepo.GetByID(ctx, postID, ""); err != nil {
		return err
	}
	return s.postRepo.Save(ctx, userID, postID)
}

func (s *PostService) UnsavePost(ctx context.Context, userID, postID string) error {
	return s.postRepo.Unsave(ctx, userID, postID)
}

func (s *PostService) AddComment(ctx context.Context, userID, postID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if _, err := s.postRepo.GetByID(ctx, postID, ""); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) ListComments(ctx context.Context, postID string, limit, offset int) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

// UpdateComment replaces a comment's content. Only the author may
// edit it.
func (s *PostService) UpdateComment(ctx context.Context, userID, commentID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewUnauthorizedError("Only the author can edit this comment")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment by its author.
func (s *PostService) DeleteComment(ctx context.Context, userID, commentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewUnauthorizedError("Only the author can delete this comment")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
