package validation

import (
	"fmt"
	"strings"

	"skillshare/internal/models"
)

const (
	maxPlanTitleLength   = 200
	maxPlanSubjectLength = 100
	maxTopicsPerPlan     = 500
)

// ValidatePlanTitle checks the plan title is present and within bounds.
func ValidatePlanTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxPlanTitleLength {
		return fmt.Errorf("title must not exceed %d characters", maxPlanTitleLength)
	}
	return nil
}

// ValidateTopics checks every topic carries a known status. An empty
// status is allowed on input; normalization fills it in.
func ValidateTopics(topics []models.Topic) error {
	if len(topics) > maxTopicsPerPlan {
		return fmt.Errorf("a plan must not exceed %d topics", maxTopicsPerPlan)
	}
	for i := range topics {
		if topics[i].Status != "" && !topics[i].Status.Valid() {
			return fmt.Errorf("topic %d has unknown status %q", i, topics[i].Status)
		}
	}
	return nil
}

// ValidateEstimatedDays rejects negative estimates.
func ValidateEstimatedDays(days int) error {
	if days < 0 {
		return fmt.Errorf("estimated days must not be negative")
	}
	return nil
}

// ValidateLearningPlan runs all plan-level checks.
func ValidateLearningPlan(plan *models.LearningPlan) error {
	if err := ValidatePlanTitle(plan.Title); err != nil {
		return err
	}
	if len(plan.Subject) > maxPlanSubjectLength {
		return fmt.Errorf("subject must not exceed %d characters", maxPlanSubjectLength)
	}
	if err := ValidateTopics(plan.Topics); err != nil {
		return err
	}
	return ValidateEstimatedDays(plan.EstimatedDays)
}
