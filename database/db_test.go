package database

import (
	"testing"

	"taskboard/config"
	"taskboard/logger"
	"taskboard/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	db, err := Open(cfg, "error", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestMigrateCreatesSchema(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(db, logger.Nop()))

	for _, table := range []string{"users", "team_members", "projects", "project_members", "tasks", "task_assignments"} {
		require.True(t, db.Migrator().HasTable(table), table)
	}
	require.True(t, db.Migrator().HasIndex("projects", "idx_projects_name_key"))
	require.True(t, db.Migrator().HasIndex("tasks", "idx_tasks_title_key"))

	// running twice is harmless
	require.NoError(t, Migrate(db, logger.Nop()))
}

func TestUniqueNameIndexIsCaseInsensitive(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(db, logger.Nop()))

	require.NoError(t, db.Omit("Members").Create(&models.Project{Name: "alpha", Description: "first"}).Error)
	err := db.Omit("Members").Create(&models.Project{Name: "Alpha", Description: "second"}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, db.Omit("Members").Create(&models.Project{Name: "école", Description: "third"}).Error)
	err = db.Omit("Members").Create(&models.Project{Name: "École", Description: "fourth"}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestStatusCheckConstraint(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Migrate(db, logger.Nop()))

	project := models.Project{Name: "p", Description: "d"}
	require.NoError(t, db.Omit("Members").Create(&project).Error)

	task := models.Task{Title: "t", Description: "d", ProjectID: project.ID, Status: "blocked"}
	require.Error(t, db.Omit("Assignments", "Project").Create(&task).Error)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, "error", logger.Nop())
	require.Error(t, err)
}
