// Package seed provides helpers to create demo data for development
// and testing.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"skillshare/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var planSubjects = []string{
	"Programming", "Mathematics", "Music", "Languages", "Design",
	"Data Science", "Photography", "Writing", "Finance", "Fitness",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Factory{db: db, rnd: rand.New(rand.NewSource(seed))}
}

// CreateUser persists a user with a profile and a known password.
func (f *Factory) CreateUser(password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	fullName := gofakeit.Name()
	user := &models.User{
		Email:    gofakeit.Email(),
		Name:     fullName,
		Password: string(hashed),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		UserID:            user.ID,
		FullName:          fullName,
		ProfilePictureURL: fmt.Sprintf("https://picsum.photos/seed/%s/512/512", gofakeit.UUID()),
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	user.Profile = profile
	return user, nil
}

// BuildTopics generates n topics with a mixed spread of statuses.
func (f *Factory) BuildTopics(n int) []models.Topic {
	topics := make([]models.Topic, 0, n)
	for i := 0; i < n; i++ {
		var status models.TopicStatus
		switch f.rnd.Intn(3) {
		case 0:
			status = models.TopicNotStarted
		case 1:
			status = models.TopicInProgress
		default:
			status = models.TopicCompleted
		}
		topic := models.Topic{Title: gofakeit.BookTitle(), Status: status}
		topic.Normalize()
		topics = append(topics, topic)
	}
	return topics
}

// CreatePlan persists a learning plan owned by the user, with a
// realistic created_at spread over the past few months.
func (f *Factory) CreatePlan(owner *models.User, overrides ...func(*models.LearningPlan)) (*models.LearningPlan, error) {
	followers := f.rnd.Intn(40)
	plan := &models.LearningPlan{
		Title:         "Learn " + gofakeit.HackerNoun(),
		Description:   gofakeit.Paragraph(1, 2, 8, " "),
		Subject:       planSubjects[f.rnd.Intn(len(planSubjects))],
		Topics:        f.BuildTopics(2 + f.rnd.Intn(6)),
		EstimatedDays: 7 + f.rnd.Intn(84),
		Followers:     &followers,
		UserID:        owner.ID,
		CreatedAt:     f.pastInstant(120),
	}
	plan.Resources = []models.Resource{
		{Title: gofakeit.BookTitle(), URL: gofakeit.URL()},
		{Title: gofakeit.BookTitle(), URL: gofakeit.URL()},
	}

	for _, override := range overrides {
		override(plan)
	}

	if err := f.db.Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

// CreatePost persists a post authored by the user.
func (f *Factory) CreatePost(author *models.User) (*models.Post, error) {
	post := &models.Post{
		UserID:      author.ID,
		Description: gofakeit.Sentence(12),
		CreatedAt:   f.pastInstant(90),
	}
	if f.rnd.Intn(2) == 0 {
		post.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment on the post.
func (f *Factory) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  author.ID,
		Content: gofakeit.Sentence(8),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (f *Factory) pastInstant(maxDays int) time.Time {
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
}
