package services

import (
	"context"
	"errors"

	"taskboard/models"
	"taskboard/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskService struct {
	tasks    repository.Tasks
	projects repository.Projects
	members  repository.TeamMembers
	log      *zap.SugaredLogger
}

func NewTaskService(tasks repository.Tasks, projects repository.Projects, members repository.TeamMembers, log *zap.SugaredLogger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, members: members, log: log.Named("tasks")}
}

func (s *TaskService) checkTitle(ctx context.Context, title string, exclude uuid.UUID, msg, failure string) error {
	taken, err := s.tasks.TaskTitleTaken(ctx, title, exclude)
	if err != nil {
		return internal(failure, err)
	}
	if taken {
		return conflict(msg)
	}
	return nil
}

func (s *TaskService) checkProject(ctx context.Context, id uuid.UUID, failure string) error {
	ok, err := s.projects.ProjectExists(ctx, id)
	if err != nil {
		return internal(failure, err)
	}
	if !ok {
		return reference("Project does not exist")
	}
	return nil
}

// Create adds a task once its title is free and its project and assignees exist.
func (s *TaskService) Create(ctx context.Context, f models.TaskFields) (*models.Task, error) {
	const failure = "Error creating task"
	if err := s.checkTitle(ctx, f.Title, uuid.Nil, "Task with this title already exists", failure); err != nil {
		return nil, err
	}
	if err := s.checkProject(ctx, f.ProjectID, failure); err != nil {
		return nil, err
	}
	if err := checkMembers(ctx, s.members, f.AssignedMemberIDs, "One or more assigned members do not exist", failure); err != nil {
		return nil, err
	}

	task, err := s.tasks.CreateTask(ctx, f)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, conflict("Task with this title already exists")
	case errors.Is(err, repository.ErrMissingReference):
		return nil, reference("Project or assigned members do not exist")
	case err != nil:
		return nil, internal(failure, err)
	}
	s.log.Infow("task created", "id", task.ID, "project", task.ProjectID)
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.Task(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound("Task not found")
	case err != nil:
		return nil, internal("Error fetching task", err)
	}
	return task, nil
}

// List returns one page of tasks matching filter.
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) (models.PageResult[models.Task], error) {
	tasks, total, err := s.tasks.ListTasks(ctx, filter)
	if err != nil {
		return models.PageResult[models.Task]{}, internal("Error fetching tasks", err)
	}
	return models.NewPageResult(tasks, total, filter.Page), nil
}

func (s *TaskService) Update(ctx context.Context, id uuid.UUID, patch models.TaskPatch) (*models.Task, error) {
	const failure = "Error updating task"
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		if err := s.checkTitle(ctx, *patch.Title, id, "Another task with this title already exists", failure); err != nil {
			return nil, err
		}
	}
	if patch.ProjectID != nil {
		if err := s.checkProject(ctx, *patch.ProjectID, failure); err != nil {
			return nil, err
		}
	}
	if patch.AssignedMemberIDs != nil {
		if err := checkMembers(ctx, s.members, patch.AssignedMemberIDs, "One or more assigned members do not exist", failure); err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.UpdateTask(ctx, id, patch)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound("Task not found")
	case errors.Is(err, repository.ErrDuplicate):
		return nil, conflict("Another task with this title already exists")
	case errors.Is(err, repository.ErrMissingReference):
		return nil, reference("Project or assigned members do not exist")
	case err != nil:
		return nil, internal(failure, err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tasks.DeleteTask(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound("Task not found")
	case err != nil:
		return internal("Error deleting task", err)
	}
	s.log.Infow("task deleted", "id", id)
	return nil
}
