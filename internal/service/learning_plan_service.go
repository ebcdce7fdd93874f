// Package service contains the application's business logic layer.
package service

import (
	"context"
	"fmt"
	"time"

	"skillshare/internal/models"
	"skillshare/internal/notifications"
	"skillshare/internal/observability"
	"skillshare/internal/repository"
	"skillshare/internal/validation"
)

// LearningPlanService orchestrates plan CRUD, the follow counter
// protocol, and owner enrichment of read projections.
type LearningPlanService struct {
	planRepo repository.LearningPlanRepository
	userRepo repository.UserRepository
	publish  func(notifications.FollowEvent)
}

// PlanInput is the write payload for create and update. Followers and
// Following are pointers: an update that omits them keeps the stored
// values, an update that supplies them overwrites.
type PlanInput struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Subject       string            `json:"subject"`
	Topics        []models.Topic    `json:"topics"`
	Resources     []models.Resource `json:"resources"`
	EstimatedDays int               `json:"estimated_days"`
	Followers     *int              `json:"followers,omitempty"`
	Following     *bool             `json:"following,omitempty"`
}

// NewLearningPlanService creates a new learning plan service. publish
// may be nil when no follow feed is wired (tests, batch tools).
func NewLearningPlanService(
	planRepo repository.LearningPlanRepository,
	userRepo repository.UserRepository,
	publish func(notifications.FollowEvent),
) *LearningPlanService {
	return &LearningPlanService{
		planRepo: planRepo,
		userRepo: userRepo,
		publish:  publish,
	}
}

// Create stores a new plan owned by ownerID. The owner comes from the
// authenticated caller and wins over anything in the payload.
func (s *LearningPlanService) Create(ctx context.Context, ownerID string, in PlanInput) (*models.LearningPlan, error) {
	if ownerID == "" {
		return nil, models.NewValidationError("Owner is required")
	}

	zero := 0
	plan := &models.LearningPlan{
		Title:         in.Title,
		Description:   in.Description,
		Subject:       in.Subject,
		Topics:        in.Topics,
		Resources:     in.Resources,
		EstimatedDays: in.EstimatedDays,
		Followers:     &zero,
		UserID:        ownerID,
		CreatedAt:     time.Now().UTC(),
	}
	for i := range plan.Topics {
		plan.Topics[i].Normalize()
	}

	if err := validation.ValidateLearningPlan(plan); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetAll returns every plan as an enriched projection. A plan that
// cannot be projected is skipped, never aborting the batch.
func (s *LearningPlanService) GetAll(ctx context.Context) ([]*models.LearningPlanResponse, error) {
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.LearningPlanResponse, 0, len(plans))
	for _, plan := range plans {
		if resp := s.safeResponse(ctx, plan); resp != nil {
			responses = append(responses, resp)
		}
	}
	return responses, nil
}

// GetByOwner returns all plans owned by ownerID as enriched
// projections. An owner with zero plans is reported as NotFound; the
// API has always conflated "unknown owner" with "no plans" and callers
// depend on it.
func (s *LearningPlanService) GetByOwner(ctx context.Context, ownerID string) ([]*models.LearningPlanResponse, error) {
	plans, err := s.planRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, models.NewNotFoundError("Learning plans for user", ownerID)
	}

	responses := make([]*models.LearningPlanResponse, 0, len(plans))
	for _, plan := range plans {
		if resp := s.safeResponse(ctx, plan); resp != nil {
			responses = append(responses, resp)
		}
	}
	return responses, nil
}

// GetByID returns one enriched projection.
func (s *LearningPlanService) GetByID(ctx context.Context, planID string) (*models.LearningPlanResponse, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, plan), nil
}

// Update merges the payload onto the stored plan and persists it. Only
// the plan's owner may update it.
func (s *LearningPlanService) Update(ctx context.Context, ownerID, planID string, in PlanInput) (*models.LearningPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != ownerID {
		return nil, models.NewUnauthorizedError("Only the owner can modify this plan")
	}

	applyPlanUpdate(plan, in)

	if err := validation.ValidateLearningPlan(plan); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan. Only the plan's owner may delete it.
func (s *LearningPlanService) Delete(ctx context.Context, ownerID, planID string) error {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	if plan.UserID != ownerID {
		return models.NewUnauthorizedError("Only the owner can delete this plan")
	}
	return s.planRepo.Delete(ctx, planID)
}

// Follow increments the plan's follower counter and marks it followed.
//
// This is a read-modify-write on the whole row with no version check:
// two concurrent follows can lose an increment. Moving the counter to
// an atomic UPDATE would close the gap at the cost of the single-row
// write model.
func (s *LearningPlanService) Follow(ctx context.Context, planID, followerID string) (*models.LearningPlanResponse, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	next := plan.FollowerCount() + 1
	following := true
	plan.Followers = &next
	plan.Following = &following

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}

	observability.FollowEventsTotal.WithLabelValues("follow").Inc()
	s.publishFollowEvent(notifications.EventFollowed, planID, followerID, next)

	return s.enrich(ctx, plan), nil
}

// Unfollow decrements the follower counter, clamped at zero, and marks
// the plan unfollowed.
func (s *LearningPlanService) Unfollow(ctx context.Context, planID, followerID string) (*models.LearningPlanResponse, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	next := plan.FollowerCount() - 1
	if next < 0 {
		next = 0
	}
	following := false
	plan.Followers = &next
	plan.Following = &following

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}

	observability.FollowEventsTotal.WithLabelValues("unfollow").Inc()
	s.publishFollowEvent(notifications.EventUnfollowed, planID, followerID, next)

	return s.enrich(ctx, plan), nil
}

// applyPlanUpdate is the explicit field-by-field merge for updates.
// UserID and CreatedAt are never touched. Followers and Following only
// change when the payload supplies them. Every topic is normalized
// after the merge so the status and its boolean alias cannot disagree.
func applyPlanUpdate(plan *models.LearningPlan, in PlanInput) {
	plan.Title = in.Title
	plan.Description = in.Description
	plan.Subject = in.Subject
	plan.Topics = in.Topics
	plan.Resources = in.Resources
	plan.EstimatedDays = in.EstimatedDays

	if in.Followers != nil {
		v := *in.Followers
		if v < 0 {
			v = 0
		}
		plan.Followers = &v
	}
	if in.Following != nil {
		v := *in.Following
		plan.Following = &v
	}

	for i := range plan.Topics {
		plan.Topics[i].Normalize()
	}
}

// enrich builds the read projection and attaches the owner. A failed
// owner lookup degrades to a placeholder; it never fails the read.
func (s *LearningPlanService) enrich(ctx context.Context, plan *models.LearningPlan) *models.LearningPlanResponse {
	resp := models.NewLearningPlanResponse(plan)
	if plan.UserID == "" {
		return resp
	}

	user, err := s.userRepo.GetByID(ctx, plan.UserID)
	if err != nil || user == nil {
		observability.GlobalLogger.LogDegradedEnrichment(ctx, plan.ID, plan.UserID, err)
		resp.User = &models.UserDTO{
			ID:       plan.UserID,
			Name:     "Unknown User",
			Username: "unknown@example.com",
		}
		return resp
	}

	dto := &models.UserDTO{ID: user.ID, Name: user.Email, Username: user.Email}
	if user.Profile != nil {
		dto.Name = user.Profile.FullName
		dto.ProfilePicture = user.Profile.ProfilePictureURL
	}
	resp.User = dto
	return resp
}

// safeResponse projects one plan for a batch read, converting any
// panic into a skipped item.
func (s *LearningPlanService) safeResponse(ctx context.Context, plan *models.LearningPlan) (resp *models.LearningPlanResponse) {
	defer func() {
		if r := recover(); r != nil {
			id := "unknown"
			if plan != nil {
				id = plan.ID
			}
			observability.GlobalLogger.LogSkippedPlan(ctx, id, fmt.Errorf("projection panic: %v", r))
			resp = nil
		}
	}()

	if plan == nil {
		return nil
	}
	return s.enrich(ctx, plan)
}

func (s *LearningPlanService) publishFollowEvent(eventType, planID, userID string, followers int) {
	if s.publish == nil {
		return
	}
	s.publish(notifications.FollowEvent{
		Type:       eventType,
		PlanID:     planID,
		UserID:     userID,
		Followers:  followers,
		OccurredAt: time.Now().UTC(),
	})
}
