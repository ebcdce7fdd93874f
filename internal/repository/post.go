package repository

import (
	"context"
	"errors"

	"skillshare/internal/models"
	"skillshare/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string, currentUserID string) (*models.Post, error)
	List(ctx context.Context, limit, offset int, currentUserID string) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID string, limit, offset int, currentUserID string) ([]*models.Post, error)
	ListSaved(ctx context.Context, userID string, limit, offset int) ([]*models.Post, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, userID, postID string) error
	Unlike(ctx context.Context, userID, postID string) error
	Save(ctx context.Context, userID, postID string) error
	Unsave(ctx context.Context, userID, postID string) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails decorates the query with the computed likes count and,
// when a viewer is known, their liked/saved flags.
func (r *postRepository) applyPostDetails(q *gorm.DB, currentUserID string) *gorm.DB {
	if currentUserID == "" {
		return q.Select(`posts.*,
			(SELECT count(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count`)
	}
	return q.Select(`posts.*,
		(SELECT count(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count,
		EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked,
		EXISTS(SELECT 1 FROM saved_posts WHERE saved_posts.post_id = posts.id AND saved_posts.user_id = ?) AS saved`,
		currentUserID, currentUserID)
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string, currentUserID string) (*models.Post, error) {
	defer observability.TrackQuery("get_by_id", "posts")()

	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("User.Profile").
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, currentUserID string) ([]*models.Post, error) {
	defer observability.TrackQuery("list", "posts")()

	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("User.Profile").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID string, limit, offset int, currentUserID string) ([]*models.Post, error) {
	defer observability.TrackQuery("list_by_user", "posts")()

	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("User.Profile").
		Where("posts.user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListSaved(ctx context.Context, userID string, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("list_saved", "posts")()

	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Preload("User.Profile").
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id").
		Where("saved_posts.user_id = ?", userID).
		Order("saved_posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	defer observability.TrackQuery("delete", "posts")()

	res := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID string) error {
	defer observability.TrackQuery("like", "likes")()

	like := models.Like{PostID: postID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		// Liking twice is a no-op.
		if isUniqueConstraintError(err) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID string) error {
	defer observability.TrackQuery("unlike", "likes")()

	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Save(ctx context.Context, userID, postID string) error {
	defer observability.TrackQuery("save", "saved_posts")()

	saved := models.SavedPost{PostID: postID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&saved).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Unsave(ctx context.Context, userID, postID string) error {
	defer observability.TrackQuery("unsave", "saved_posts")()

	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.SavedPost{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
