package database

import "skillshare/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.UserProfile{},
		&models.LearningPlan{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.SavedPost{},
	}
}
