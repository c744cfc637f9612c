package services

import (
	"context"
	"errors"

	"taskboard/models"
	"taskboard/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectService struct {
	projects repository.Projects
	members  repository.TeamMembers
	log      *zap.SugaredLogger
}

func NewProjectService(projects repository.Projects, members repository.TeamMembers, log *zap.SugaredLogger) *ProjectService {
	return &ProjectService{projects: projects, members: members, log: log.Named("projects")}
}

// ================== INTEGRITY CHECKS ==================

// checkMembers fails unless every id names an existing team member.
func checkMembers(ctx context.Context, members repository.TeamMembers, ids []uuid.UUID, msg, failure string) error {
	n, err := members.CountTeamMembers(ctx, ids)
	if err != nil {
		return internal(failure, err)
	}
	if n != int64(len(ids)) {
		return reference(msg)
	}
	return nil
}

func (s *ProjectService) checkName(ctx context.Context, name string, exclude uuid.UUID, msg, failure string) error {
	taken, err := s.projects.ProjectNameTaken(ctx, name, exclude)
	if err != nil {
		return internal(failure, err)
	}
	if taken {
		return conflict(msg)
	}
	return nil
}

// ================== CRUD ==================

func (s *ProjectService) Create(ctx context.Context, f models.ProjectFields) (*models.Project, error) {
	const failure = "Error creating project"
	if err := s.checkName(ctx, f.Name, uuid.Nil, "Project with this name already exists", failure); err != nil {
		return nil, err
	}
	if err := checkMembers(ctx, s.members, f.TeamMemberIDs, "One or more team members do not exist", failure); err != nil {
		return nil, err
	}

	project, err := s.projects.CreateProject(ctx, f)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, conflict("Project with this name already exists")
	case errors.Is(err, repository.ErrMissingReference):
		return nil, reference("One or more team members do not exist")
	case err != nil:
		return nil, internal(failure, err)
	}
	s.log.Infow("project created", "id", project.ID, "name", project.Name)
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.projects.Project(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound("Project not found")
	case err != nil:
		return nil, internal("Error fetching project", err)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, page models.Page) (models.PageResult[models.Project], error) {
	projects, total, err := s.projects.ListProjects(ctx, page)
	if err != nil {
		return models.PageResult[models.Project]{}, internal("Error fetching projects", err)
	}
	return models.NewPageResult(projects, total, page), nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	const failure = "Error updating project"
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if err := s.checkName(ctx, *patch.Name, id, "Another project with this name already exists", failure); err != nil {
			return nil, err
		}
	}
	if patch.TeamMemberIDs != nil {
		if err := checkMembers(ctx, s.members, patch.TeamMemberIDs, "One or more team members do not exist", failure); err != nil {
			return nil, err
		}
	}

	project, err := s.projects.UpdateProject(ctx, id, patch)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound("Project not found")
	case errors.Is(err, repository.ErrDuplicate):
		return nil, conflict("Another project with this name already exists")
	case errors.Is(err, repository.ErrMissingReference):
		return nil, reference("One or more team members do not exist")
	case err != nil:
		return nil, internal(failure, err)
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.projects.DeleteProject(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound("Project not found")
	case errors.Is(err, repository.ErrInUse):
		return conflict("Project still has tasks")
	case err != nil:
		return internal("Error deleting project", err)
	}
	s.log.Infow("project deleted", "id", id)
	return nil
}
