package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func topicWithStatus(status TopicStatus) Topic {
	return Topic{ID: "t-" + string(status), Title: "topic", Status: status}
}

func TestCompletionPercentage_NoTopics(t *testing.T) {
	plan := &LearningPlan{}
	assert.Equal(t, 0, plan.CompletionPercentage())

	plan.Topics = []Topic{}
	assert.Equal(t, 0, plan.CompletionPercentage())
}

func TestCompletionPercentage_MixedTopics(t *testing.T) {
	plan := &LearningPlan{Topics: []Topic{
		topicWithStatus(TopicCompleted),
		topicWithStatus(TopicInProgress),
		topicWithStatus(TopicNotStarted),
	}}
	// floor(100 * 1 / 3)
	assert.Equal(t, 33, plan.CompletionPercentage())
}

func TestCompletionPercentage_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"all completed", 4, 4, 100},
		{"none completed", 0, 5, 0},
		{"one of eight", 1, 8, 12},
		{"two of three", 2, 3, 66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var topics []Topic
			for i := 0; i < tt.total; i++ {
				if i < tt.completed {
					topics = append(topics, topicWithStatus(TopicCompleted))
				} else {
					topics = append(topics, topicWithStatus(TopicNotStarted))
				}
			}
			plan := &LearningPlan{Topics: topics}
			assert.Equal(t, tt.want, plan.CompletionPercentage())
		})
	}
}

func TestTopic_SetCompleted(t *testing.T) {
	topic := topicWithStatus(TopicCompleted)

	// A false write collapses to IN_PROGRESS, never NOT_STARTED.
	topic.SetCompleted(false)
	assert.Equal(t, TopicInProgress, topic.Status)

	// Repeating the same write is idempotent.
	topic.SetCompleted(false)
	assert.Equal(t, TopicInProgress, topic.Status)

	topic.SetCompleted(true)
	assert.Equal(t, TopicCompleted, topic.Status)
	assert.True(t, topic.IsCompleted())
}

func TestTopic_Normalize(t *testing.T) {
	f := false
	tr := true

	t.Run("boolean alias wins over status", func(t *testing.T) {
		topic := Topic{Status: TopicCompleted, Completed: &f}
		topic.Normalize()
		assert.Equal(t, TopicInProgress, topic.Status)
		assert.NotNil(t, topic.Completed)
		assert.False(t, *topic.Completed)
	})

	t.Run("true alias completes", func(t *testing.T) {
		topic := Topic{Status: TopicNotStarted, Completed: &tr}
		topic.Normalize()
		assert.Equal(t, TopicCompleted, topic.Status)
	})

	t.Run("missing status defaults to not started", func(t *testing.T) {
		topic := Topic{Title: "fresh"}
		topic.Normalize()
		assert.Equal(t, TopicNotStarted, topic.Status)
		assert.NotEmpty(t, topic.ID)
		assert.False(t, *topic.Completed)
	})

	t.Run("existing id is preserved", func(t *testing.T) {
		topic := Topic{ID: "t1", Status: TopicInProgress}
		topic.Normalize()
		assert.Equal(t, "t1", topic.ID)
	})
}

func TestFollowerCount_NilCounter(t *testing.T) {
	plan := &LearningPlan{}
	assert.Equal(t, 0, plan.FollowerCount())

	two := 2
	plan.Followers = &two
	assert.Equal(t, 2, plan.FollowerCount())
}

func TestNewLearningPlanResponse_Defaults(t *testing.T) {
	plan := &LearningPlan{ID: "p1", Title: "Go from scratch", UserID: "u1"}
	resp := NewLearningPlanResponse(plan)

	assert.Equal(t, "p1", resp.ID)
	assert.Equal(t, 0, resp.Followers)
	assert.False(t, resp.Following)
	assert.Equal(t, 0, resp.CompletionPercentage)
	assert.NotNil(t, resp.Topics)
	assert.NotNil(t, resp.Resources)
	assert.Nil(t, resp.User)
}
