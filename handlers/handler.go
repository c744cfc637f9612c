// Package handlers exposes the services over HTTP with Fiber.
package handlers

import (
	"context"

	"taskboard/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TeamMemberService interface {
	Create(ctx context.Context, f models.TeamMemberFields) (*models.TeamMember, error)
	Get(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	List(ctx context.Context, page models.Page) (models.PageResult[models.TeamMember], error)
	Update(ctx context.Context, id uuid.UUID, patch models.TeamMemberPatch) (*models.TeamMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProjectService interface {
	Create(ctx context.Context, f models.ProjectFields) (*models.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, page models.Page) (models.PageResult[models.Project], error)
	Update(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskService interface {
	Create(ctx context.Context, f models.TaskFields) (*models.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, filter models.TaskFilter) (models.PageResult[models.Task], error)
	Update(ctx context.Context, id uuid.UUID, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Services bundles everything the handlers call into.
type Services struct {
	Members  TeamMemberService
	Projects ProjectService
	Tasks    TaskService
	Auth     AuthService
}

// Handler serves the REST API on top of the service layer.
type Handler struct {
	log          *zap.SugaredLogger
	svc          Services
	exposeErrors bool
}

// NewHandler builds a Handler. With exposeErrors set, 500 responses carry the
// underlying cause.
func NewHandler(log *zap.SugaredLogger, svc Services, exposeErrors bool) *Handler {
	return &Handler{
		log:          log.Named("http"),
		svc:          svc,
		exposeErrors: exposeErrors,
	}
}
