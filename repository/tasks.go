package repository

import (
	"context"
	"fmt"

	"taskboard/models"
	"taskboard/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withTaskRefs preloads the project and the ordered assignee list of each task.
func withTaskRefs(db *gorm.DB) *gorm.DB {
	return db.Preload("Project").
		Preload("Assignments", byPosition).
		Preload("Assignments.TeamMember")
}

// taskFilter turns a TaskFilter into WHERE clauses. All set fields are ANDed.
func taskFilter(f models.TaskFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.ProjectID != nil {
			db = db.Where("tasks.project_id = ?", *f.ProjectID)
		}
		if f.MemberID != nil {
			db = db.Where(
				"EXISTS (SELECT 1 FROM task_assignments ta WHERE ta.task_id = tasks.id AND ta.team_member_id = ?)",
				*f.MemberID,
			)
		}
		if f.Status != nil {
			db = db.Where("tasks.status = ?", *f.Status)
		}
		if f.Search != "" {
			pattern := utils.ContainsPattern(f.Search)
			db = db.Where(
				`(tasks.title_key LIKE ? ESCAPE '\' OR tasks.description_key LIKE ? ESCAPE '\')`,
				pattern, pattern,
			)
		}
		if f.DeadlineFrom != nil {
			db = db.Where("tasks.deadline >= ?", *f.DeadlineFrom)
		}
		if f.DeadlineTo != nil {
			db = db.Where("tasks.deadline <= ?", *f.DeadlineTo)
		}
		return db
	}
}

func (s *Store) CreateTask(ctx context.Context, f models.TaskFields) (*models.Task, error) {
	task := &models.Task{
		Title:       f.Title,
		Description: f.Description,
		Deadline:    f.Deadline,
		ProjectID:   f.ProjectID,
		Status:      f.Status,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		return replaceTaskAssignments(tx, task.ID, f.AssignedMemberIDs)
	})
	if err != nil {
		return nil, translate(err)
	}
	s.log.Debugw("task created", "id", task.ID, "project", task.ProjectID)
	return s.Task(ctx, task.ID)
}

func (s *Store) Task(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).Scopes(withTaskRefs).First(&task, "tasks.id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

// ListTasks returns one page of tasks matching the filter, newest first, and the
// total number of matches.
func (s *Store) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, int64, error) {
	scope := taskFilter(filter)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Task{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	tasks := make([]models.Task, 0, filter.Page.Limit)
	err := s.db.WithContext(ctx).
		Scopes(scope, withTaskRefs).
		Order("tasks.created_at DESC, tasks.id DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, total, nil
}

func (s *Store) UpdateTask(ctx context.Context, id uuid.UUID, patch models.TaskPatch) (*models.Task, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}

		cols := patch.Columns()
		if patch.AssignedMemberIDs != nil {
			if err := replaceTaskAssignments(tx, id, patch.AssignedMemberIDs); err != nil {
				return err
			}
			cols["updated_at"] = tx.Config.NowFunc()
		}
		if len(cols) == 0 {
			return nil
		}
		return tx.Model(&task).Updates(cols).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return s.Task(ctx, id)
}

func (s *Store) DeleteTask(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Select("id").First(&task, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, "id = ?", id).Error
	})
	if err != nil {
		return translateDelete(err)
	}
	s.log.Debugw("task deleted", "id", id)
	return nil
}

func (s *Store) TaskTitleTaken(ctx context.Context, title string, exclude uuid.UUID) (bool, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&models.Task{}).Where("title_key = ?", utils.FoldKey(title))
	if err := excludeID(q, "id", exclude).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check task title: %w", err)
	}
	return n > 0, nil
}

func replaceTaskAssignments(tx *gorm.DB, taskID uuid.UUID, memberIDs []uuid.UUID) error {
	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignment{}).Error; err != nil {
		return err
	}
	rows := models.NewTaskAssignments(taskID, memberIDs)
	if len(rows) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}
