// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"skillshare/internal/cache"
	"skillshare/internal/models"
	"skillshare/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// LearningPlanRepository defines the interface for learning plan data operations.
type LearningPlanRepository interface {
	Save(ctx context.Context, plan *models.LearningPlan) error
	GetByID(ctx context.Context, id string) (*models.LearningPlan, error)
	List(ctx context.Context) ([]*models.LearningPlan, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.LearningPlan, error)
	Delete(ctx context.Context, id string) error
}

// learningPlanRepository implements LearningPlanRepository
type learningPlanRepository struct {
	db *gorm.DB
}

// NewLearningPlanRepository creates a new learning plan repository
func NewLearningPlanRepository(db *gorm.DB) LearningPlanRepository {
	return &learningPlanRepository{db: db}
}

// Save upserts the whole aggregate row. A plan without an ID gets one
// assigned in BeforeCreate; a plan with an ID replaces the stored row.
func (r *learningPlanRepository) Save(ctx context.Context, plan *models.LearningPlan) error {
	defer observability.TrackQuery("save", "learning_plans")()

	if err := r.db.WithContext(ctx).Save(plan).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePlan(ctx, plan.ID, plan.UserID)
	return nil
}

func (r *learningPlanRepository) GetByID(ctx context.Context, id string) (*models.LearningPlan, error) {
	defer observability.TrackQuery("get_by_id", "learning_plans")()

	var plan models.LearningPlan
	err := cache.Aside(ctx, cache.PlanKey(id), &plan, cache.PlanTTL, func() error {
		return r.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Learning plan", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &plan, nil
}

func (r *learningPlanRepository) List(ctx context.Context) ([]*models.LearningPlan, error) {
	defer observability.TrackQuery("list", "learning_plans")()

	var plans []*models.LearningPlan
	err := cache.Aside(ctx, cache.PlanListKey, &plans, cache.PlanListTTL, func() error {
		return r.db.WithContext(ctx).Order("created_at DESC").Find(&plans).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return plans, nil
}

func (r *learningPlanRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.LearningPlan, error) {
	defer observability.TrackQuery("list_by_owner", "learning_plans")()

	var plans []*models.LearningPlan
	err := cache.Aside(ctx, cache.OwnerPlansKey(ownerID), &plans, cache.PlanListTTL, func() error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", ownerID).
			Order("created_at DESC").
			Find(&plans).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return plans, nil
}

func (r *learningPlanRepository) Delete(ctx context.Context, id string) error {
	defer observability.TrackQuery("delete", "learning_plans")()

	// Load first so the owner's listing can be invalidated too.
	var plan models.LearningPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Learning plan", id)
		}
		return models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).Delete(&models.LearningPlan{}, "id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePlan(ctx, id, plan.UserID)
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// PostgreSQL unique violation SQLSTATE 23505
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// SQLite (test env) reports constraint failures as plain strings.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
