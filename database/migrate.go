// database/migrate.go - Database Migration Runner
package database

import (
	"fmt"

	"taskboard/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var listIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_project_members_position ON project_members (project_id, position)",
	"CREATE INDEX IF NOT EXISTS idx_task_assignments_position ON task_assignments (task_id, position)",
	"CREATE INDEX IF NOT EXISTS idx_tasks_created_id ON tasks (created_at DESC, id DESC)",
}

// Migrate creates or updates every table and index the application needs.
func Migrate(db *gorm.DB, log *zap.SugaredLogger) error {
	log.Info("running database migrations")

	if err := db.AutoMigrate(
		&models.User{},
		&models.TeamMember{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskAssignment{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range listIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	log.Info("database migrations completed")
	return nil
}
