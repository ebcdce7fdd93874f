package service

import (
	"context"
	"testing"

	"skillshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getByIDFn    func(context.Context, string, string) (*models.Post, error)
	listFn       func(context.Context, int, int, string) ([]*models.Post, error)
	listByUserFn func(context.Context, string, int, int, string) ([]*models.Post, error)
	listSavedFn  func(context.Context, string, int, int) ([]*models.Post, error)
	deleteFn     func(context.Context, string) error
	likeFn       func(context.Context, string, string) error
	unlikeFn     func(context.Context, string, string) error
	saveFn       func(context.Context, string, string) error
	unsaveFn     func(context.Context, string, string) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID string) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID string) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID string, limit, offset int, currentUserID string) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) ListSaved(ctx context.Context, userID string, limit, offset int) ([]*models.Post, error) {
	return s.listSavedFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID string) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID string) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) Save(ctx context.Context, userID, postID string) error {
	return s.saveFn(ctx, userID, postID)
}
func (s *postRepoStub) Unsave(ctx context.Context, userID, postID string) error {
	return s.unsaveFn(ctx, userID, postID)
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, string) (*models.Comment, error)
	listByPostFn func(context.Context, string, int, int) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, string) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ string) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		},
		listFn: func(_ context.Context, _, _ int, _ string) ([]*models.Post, error) { return nil, nil },
		listByUserFn: func(_ context.Context, _ string, _, _ int, _ string) ([]*models.Post, error) {
			return nil, nil
		},
		listSavedFn: func(_ context.Context, _ string, _, _ int) ([]*models.Post, error) { return nil, nil },
		deleteFn:    func(_ context.Context, _ string) error { return nil },
		likeFn:      func(_ context.Context, _, _ string) error { return nil },
		unlikeFn:    func(_ context.Context, _, _ string) error { return nil },
		saveFn:      func(_ context.Context, _, _ string) error { return nil },
		unsaveFn:    func(_ context.Context, _, _ string) error { return nil },
	}
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.Comment, error) {
			return nil, models.NewNotFoundError("Comment", id)
		},
		listByPostFn: func(_ context.Context, _ string, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

func TestPostService_CreatePost(t *testing.T) {
	postRepo := noopPostRepo()
	var created *models.Post
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		created = p
		return nil
	}
	svc := NewPostService(postRepo, noopCommentRepo())

	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:      "u-1",
		Description: "Finished the concurrency chapter",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "u-1", post.UserID)

	_, err = svc.CreatePost(context.Background(), CreatePostInput{UserID: "u-1"})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.CreatePost(context.Background(), CreatePostInput{
		UserID:   "u-1",
		MediaURL: "ftp://example.com/file",
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestPostService_DeletePost_Ownership(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ string) (*models.Post, error) {
		return &models.Post{ID: id, UserID: "author"}, nil
	}
	deleted := ""
	postRepo.deleteFn = func(_ context.Context, id string) error {
		deleted = id
		return nil
	}
	svc := NewPostService(postRepo, noopCommentRepo())

	assertAppErrorCode(t, svc.DeletePost(context.Background(), "intruder", "p-1"), "UNAUTHORIZED")
	assert.Empty(t, deleted)

	require.NoError(t, svc.DeletePost(context.Background(), "author", "p-1"))
	assert.Equal(t, "p-1", deleted)
}

func TestPostService_AddComment(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ string) (*models.Post, error) {
		return &models.Post{ID: id, UserID: "author"}, nil
	}
	commentRepo := noopCommentRepo()
	svc := NewPostService(postRepo, commentRepo)

	comment, err := svc.AddComment(context.Background(), "u-1", "p-1", "Nice plan!")
	require.NoError(t, err)
	assert.Equal(t, "p-1", comment.PostID)

	_, err = svc.AddComment(context.Background(), "u-1", "p-1", "   ")
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestPostService_UpdateComment_Ownership(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id string) (*models.Comment, error) {
		return &models.Comment{ID: id, PostID: "p-1", UserID: "author", Content: "old"}, nil
	}
	var updated *models.Comment
	commentRepo.updateFn = func(_ context.Context, c *models.Comment) error {
		updated = c
		return nil
	}
	svc := NewPostService(noopPostRepo(), commentRepo)

	_, err := svc.UpdateComment(context.Background(), "intruder", "c-1", "hijacked")
	assertAppErrorCode(t, err, "UNAUTHORIZED")
	assert.Nil(t, updated)

	comment, err := svc.UpdateComment(context.Background(), "author", "c-1", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", comment.Content)
	require.NotNil(t, updated)

	_, err = svc.UpdateComment(context.Background(), "author", "c-1", "   ")
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestPostService_LikeRequiresExistingPost(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopCommentRepo())

	assertAppErrorCode(t, svc.LikePost(context.Background(), "u-1", "ghost"), "NOT_FOUND")
}
