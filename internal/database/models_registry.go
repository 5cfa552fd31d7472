package database

import "devhub/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Parents precede children so AutoMigrate creates referenced tables first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Profile{},
		&models.Experience{},
		&models.Education{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	}
}
