// Command main runs the database seeder for Skillshare.
package main

import (
	"flag"
	"log"
	"os"

	"skillshare/internal/config"
	"skillshare/internal/database"
	"skillshare/internal/seed"

	"gopkg.in/yaml.v3"
)

// preset mirrors seed.Options so demo shapes can be checked into the
// repo as YAML files and replayed with -preset.
type preset struct {
	NumUsers     int    `yaml:"users"`
	PlansPerUser int    `yaml:"plans_per_user"`
	NumPosts     int    `yaml:"posts"`
	Password     string `yaml:"password"`
	ShouldClean  bool   `yaml:"clean"`
}

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	plansPerUser := flag.Int("plans", 2, "Learning plans per user")
	numPosts := flag.Int("posts", 30, "Number of posts to create")
	password := flag.String("password", "", "Password for all seeded accounts")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	presetPath := flag.String("preset", "", "YAML preset file (overrides other flags)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	opts := seed.Options{
		NumUsers:     *numUsers,
		PlansPerUser: *plansPerUser,
		NumPosts:     *numPosts,
		Password:     *password,
		ShouldClean:  *shouldClean,
	}

	if *presetPath != "" {
		p, err := loadPreset(*presetPath)
		if err != nil {
			log.Fatalf("Failed to load preset %s: %v", *presetPath, err)
		}
		log.Printf("Applying preset %s (ignoring other flags)", *presetPath)
		opts = seed.Options{
			NumUsers:     p.NumUsers,
			PlansPerUser: p.PlansPerUser,
			NumPosts:     p.NumPosts,
			Password:     p.Password,
			ShouldClean:  p.ShouldClean,
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}

func loadPreset(path string) (*preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
