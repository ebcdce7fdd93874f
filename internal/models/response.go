package models

import "time"

// UserDTO is the owner summary embedded in a plan response. It is
// filled by enrichment, or by a placeholder when the owner record
// cannot be resolved.
type UserDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// LearningPlanResponse is the read projection of a plan. It is never
// persisted; completion percentage and the embedded user are computed
// per read.
type LearningPlanResponse struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Subject              string     `json:"subject"`
	CreatedAt            time.Time  `json:"created_at"`
	Topics               []Topic    `json:"topics"`
	Resources            []Resource `json:"resources"`
	EstimatedDays        int        `json:"estimated_days"`
	Followers            int        `json:"followers"`
	UserID               string     `json:"user_id"`
	Following            bool       `json:"following"`
	CompletionPercentage int        `json:"completion_percentage"`
	User                 *UserDTO   `json:"user,omitempty"`
}

// NewLearningPlanResponse builds the base projection from the plan's
// own fields. This step cannot fail; enrichment only adds the user.
func NewLearningPlanResponse(plan *LearningPlan) *LearningPlanResponse {
	topics := plan.Topics
	if topics == nil {
		topics = []Topic{}
	}
	resources := plan.Resources
	if resources == nil {
		resources = []Resource{}
	}
	following := false
	if plan.Following != nil {
		following = *plan.Following
	}
	return &LearningPlanResponse{
		ID:                   plan.ID,
		Title:                plan.Title,
		Description:          plan.Description,
		Subject:              plan.Subject,
		CreatedAt:            plan.CreatedAt,
		Topics:               topics,
		Resources:            resources,
		EstimatedDays:        plan.EstimatedDays,
		Followers:            plan.FollowerCount(),
		UserID:               plan.UserID,
		Following:            following,
		CompletionPercentage: plan.CompletionPercentage(),
	}
}
