package validation

import (
	"strings"
	"testing"

	"skillshare/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidatePlanTitle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"Valid", "Learn Go", false},
		{"Empty", "", true},
		{"Whitespace Only", "   ", true},
		{"Exactly Max Length", strings.Repeat("a", 200), false},
		{"Too Long", strings.Repeat("a", 201), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlanTitle(tt.title)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTopics(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		topics  []models.Topic
		wantErr bool
	}{
		{"Empty", nil, false},
		{"Known Statuses", []models.Topic{
			{Title: "A", Status: models.TopicNotStarted},
			{Title: "B", Status: models.TopicInProgress},
			{Title: "C", Status: models.TopicCompleted},
		}, false},
		{"Blank Status Allowed", []models.Topic{{Title: "A"}}, false},
		{"Unknown Status", []models.Topic{{Title: "A", Status: "DONE"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopics(tt.topics)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLearningPlan(t *testing.T) {
	t.Parallel()
	valid := &models.LearningPlan{Title: "Learn Go", Subject: "Programming", EstimatedDays: 30}
	assert.NoError(t, ValidateLearningPlan(valid))

	negative := &models.LearningPlan{Title: "Learn Go", EstimatedDays: -1}
	assert.Error(t, ValidateLearningPlan(negative))

	untitled := &models.LearningPlan{EstimatedDays: 10}
	assert.Error(t, ValidateLearningPlan(untitled))
}
