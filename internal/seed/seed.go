package seed

import (
	"fmt"
	"log"

	"skillshare/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	PlansPerUser int
	NumPosts     int
	Password     string
	ShouldClean  bool
}

// Run populates the database with demo users, plans, and posts.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.PlansPerUser <= 0 {
		opts.PlansPerUser = 2
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 30
	}
	if opts.Password == "" {
		opts.Password = "DemoPassword12!"
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return fmt.Errorf("clean before seed: %w", err)
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser(opts.Password)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users (password %q)", len(users), opts.Password)

	planCount := 0
	for _, user := range users {
		for i := 0; i < opts.PlansPerUser; i++ {
			if _, err := factory.CreatePlan(user); err != nil {
				return fmt.Errorf("seed plan: %w", err)
			}
			planCount++
		}
	}
	log.Printf("Seeded %d learning plans", planCount)

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[factory.rnd.Intn(len(users))]
		post, err := factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}
	for _, post := range posts {
		commenter := users[factory.rnd.Intn(len(users))]
		if _, err := factory.CreateComment(commenter, post); err != nil {
			return fmt.Errorf("seed comment: %w", err)
		}
	}
	log.Printf("Seeded %d posts with comments", len(posts))

	return nil
}

// Clean removes all seeded rows. Intended for development databases.
func Clean(db *gorm.DB) error {
	tables := []string{"comments", "likes", "saved_posts", "posts", "learning_plans", "user_profiles", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
