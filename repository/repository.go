// Package repository persists team members, projects, tasks and users through gorm.
package repository

import (
	"context"
	"errors"
	"fmt"

	"taskboard/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate signals a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInUse signals a delete blocked by records that still reference the target.
	ErrInUse = errors.New("record is still referenced")
	// ErrMissingReference signals a write that points at a record that does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")
)

// TeamMembers exposes team member persistence.
type TeamMembers interface {
	CreateTeamMember(ctx context.Context, f models.TeamMemberFields) (*models.TeamMember, error)
	TeamMember(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	TeamMemberByEmail(ctx context.Context, email string) (*models.TeamMember, error)
	ListTeamMembers(ctx context.Context, page models.Page) ([]models.TeamMember, int64, error)
	UpdateTeamMember(ctx context.Context, id uuid.UUID, patch models.TeamMemberPatch) (*models.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id uuid.UUID) error
	TeamMemberEmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error)
	CountTeamMembers(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// Projects exposes project persistence.
type Projects interface {
	CreateProject(ctx context.Context, f models.ProjectFields) (*models.Project, error)
	Project(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ProjectByName(ctx context.Context, name string) (*models.Project, error)
	ListProjects(ctx context.Context, page models.Page) ([]models.Project, int64, error)
	UpdateProject(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ProjectNameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error)
	ProjectExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Tasks exposes task persistence.
type Tasks interface {
	CreateTask(ctx context.Context, f models.TaskFields) (*models.Task, error)
	Task(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, int64, error)
	UpdateTask(ctx context.Context, id uuid.UUID, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	TaskTitleTaken(ctx context.Context, title string, exclude uuid.UUID) (bool, error)
}

// Users exposes account persistence.
type Users interface {
	CreateUser(ctx context.Context, user *models.User) error
	User(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Repository aggregates all persistence interfaces.
type Repository interface {
	TeamMembers
	Projects
	Tasks
	Users
}

// Store implements Repository on top of a gorm connection.
type Store struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

var _ Repository = (*Store)(nil)

// New wraps an open gorm connection.
func New(db *gorm.DB, log *zap.SugaredLogger) *Store {
	return &Store{db: db, log: log.Named("repository")}
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrMissingReference, err)
	default:
		return err
	}
}

// translateDelete is translate for deletes, where a foreign key violation means
// another record still points at the one being removed.
func translateDelete(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", ErrInUse, err)
	}
	return translate(err)
}

func excludeID(db *gorm.DB, column string, id uuid.UUID) *gorm.DB {
	if id == uuid.Nil {
		return db
	}
	return db.Where(column+" <> ?", id)
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
