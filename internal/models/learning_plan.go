package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TopicStatus is the tri-state progress marker of a topic.
type TopicStatus string

const (
	// TopicNotStarted indicates the topic has not been picked up yet.
	TopicNotStarted TopicStatus = "NOT_STARTED"
	// TopicInProgress indicates the topic is being worked on.
	TopicInProgress TopicStatus = "IN_PROGRESS"
	// TopicCompleted indicates the topic is done.
	TopicCompleted TopicStatus = "COMPLETED"
)

// Valid reports whether s is one of the three known statuses.
func (s TopicStatus) Valid() bool {
	switch s {
	case TopicNotStarted, TopicInProgress, TopicCompleted:
		return true
	}
	return false
}

// Topic is a unit of progress inside a learning plan. It has no
// lifecycle of its own; the owning plan row embeds the whole sequence.
type Topic struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Status TopicStatus `json:"status"`
	// Completed is the legacy boolean view of Status. Older clients
	// send only this field; newer ones send Status. Normalize keeps
	// the two consistent.
	Completed *bool `json:"completed,omitempty"`
}

// IsCompleted reports the derived boolean view of the status.
func (t *Topic) IsCompleted() bool {
	return t.Status == TopicCompleted
}

// SetCompleted writes the legacy boolean view. A false write collapses
// to IN_PROGRESS, never NOT_STARTED: the boolean form only ever
// distinguished done from not-done, and callers that still use it
// expect the collapse.
func (t *Topic) SetCompleted(completed bool) {
	if completed {
		t.Status = TopicCompleted
	} else {
		t.Status = TopicInProgress
	}
}

// Normalize reconciles the boolean alias with the tri-state status and
// assigns an ID when the topic is new. When both forms arrive on a
// write, the boolean wins; it is re-applied after every merge so the
// stored record can never carry a contradictory pair.
func (t *Topic) Normalize() {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Completed != nil {
		t.SetCompleted(*t.Completed)
	}
	if t.Status == "" {
		t.Status = TopicNotStarted
	}
	done := t.IsCompleted()
	t.Completed = &done
}

// Resource is an opaque reference attached to a plan.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// LearningPlan is the aggregate root: a titled, ordered collection of
// topics and resources owned by a single user.
//
// Followers and Following are pointers because the store kept them
// nullable: an uninitialized counter reads as zero, and an update
// payload that omits them must not clobber the stored values.
type LearningPlan struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Subject       string     `json:"subject"`
	CreatedAt     time.Time  `json:"created_at"`
	Topics        []Topic    `gorm:"serializer:json" json:"topics"`
	Resources     []Resource `gorm:"serializer:json" json:"resources"`
	EstimatedDays int        `json:"estimated_days"`
	Followers     *int       `json:"followers"`
	UserID        string     `gorm:"index;size:36" json:"user_id"`
	Following     *bool      `json:"following"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (LearningPlan) TableName() string {
	return "learning_plans"
}

// BeforeCreate assigns a UUID when the store has not been given one.
func (p *LearningPlan) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// FollowerCount reads the counter, treating nil as zero.
func (p *LearningPlan) FollowerCount() int {
	if p.Followers == nil {
		return 0
	}
	return *p.Followers
}

// CompletionPercentage computes floor(100 * completed / total) over the
// topic sequence, 0 when there are no topics. It is derived on every
// read and never persisted, so topic edits can't leave it stale.
func (p *LearningPlan) CompletionPercentage() int {
	if len(p.Topics) == 0 {
		return 0
	}
	completed := 0
	for i := range p.Topics {
		if p.Topics[i].IsCompleted() {
			completed++
		}
	}
	return completed * 100 / len(p.Topics)
}
