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

// withProjectMembers preloads the ordered member list of each project.
func withProjectMembers(db *gorm.DB) *gorm.DB {
	return db.Preload("Members", byPosition).Preload("Members.TeamMember")
}

func (s *Store) CreateProject(ctx context.Context, f models.ProjectFields) (*models.Project, error) {
	project := &models.Project{Name: f.Name, Description: f.Description}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		return replaceProjectMembers(tx, project.ID, f.TeamMemberIDs)
	})
	if err != nil {
		return nil, translate(err)
	}
	s.log.Debugw("project created", "id", project.ID, "members", len(f.TeamMemberIDs))
	return s.Project(ctx, project.ID)
}

func (s *Store) Project(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).Scopes(withProjectMembers).First(&project, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

// ProjectByName finds a project by case-insensitive name.
func (s *Store) ProjectByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Scopes(withProjectMembers).
		Where("name_key = ?", utils.FoldKey(name)).
		First(&project).Error
	if err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

func (s *Store) ListProjects(ctx context.Context, page models.Page) ([]models.Project, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	projects := make([]models.Project, 0, page.Limit)
	err := s.db.WithContext(ctx).
		Scopes(withProjectMembers).
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	return projects, total, nil
}

func (s *Store) UpdateProject(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, "id = ?", id).Error; err != nil {
			return err
		}

		cols := patch.Columns()
		if patch.TeamMemberIDs != nil {
			if err := replaceProjectMembers(tx, id, patch.TeamMemberIDs); err != nil {
				return err
			}
			cols["updated_at"] = tx.Config.NowFunc()
		}
		if len(cols) == 0 {
			return nil
		}
		return tx.Model(&project).Updates(cols).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return s.Project(ctx, id)
}

// DeleteProject refuses to remove a project that still has tasks.
func (s *Store) DeleteProject(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Select("id").First(&project, "id = ?", id).Error; err != nil {
			return err
		}

		var tasks int64
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Count(&tasks).Error; err != nil {
			return err
		}
		if tasks > 0 {
			return ErrInUse
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
	if err != nil {
		return translateDelete(err)
	}
	s.log.Debugw("project deleted", "id", id)
	return nil
}

func (s *Store) ProjectNameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&models.Project{}).Where("name_key = ?", utils.FoldKey(name))
	if err := excludeID(q, "id", exclude).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check project name: %w", err)
	}
	return n > 0, nil
}

func (s *Store) ProjectExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check project: %w", err)
	}
	return n > 0, nil
}

func replaceProjectMembers(tx *gorm.DB, projectID uuid.UUID, memberIDs []uuid.UUID) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error; err != nil {
		return err
	}
	rows := models.NewProjectMembers(projectID, memberIDs)
	if len(rows) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}
