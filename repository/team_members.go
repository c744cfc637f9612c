package repository

import (
	"context"
	"fmt"

	"taskboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Store) CreateTeamMember(ctx context.Context, f models.TeamMemberFields) (*models.TeamMember, error) {
	member := &models.TeamMember{
		Name:        f.Name,
		Email:       f.Email,
		Designation: f.Designation,
	}
	if err := s.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, translate(err)
	}
	s.log.Debugw("team member created", "id", member.ID)
	return member, nil
}

func (s *Store) TeamMember(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := s.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (s *Store) TeamMemberByEmail(ctx context.Context, email string) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&member).Error; err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (s *Store) ListTeamMembers(ctx context.Context, page models.Page) ([]models.TeamMember, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.TeamMember{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count team members: %w", err)
	}

	members := make([]models.TeamMember, 0, page.Limit)
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&members).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list team members: %w", err)
	}
	return members, total, nil
}

func (s *Store) UpdateTeamMember(ctx context.Context, id uuid.UUID, patch models.TeamMemberPatch) (*models.TeamMember, error) {
	var member models.TeamMember
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&member, "id = ?", id).Error; err != nil {
			return err
		}
		cols := patch.Columns()
		if len(cols) == 0 {
			return nil
		}
		return tx.Model(&member).Updates(cols).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return s.TeamMember(ctx, id)
}

// DeleteTeamMember refuses to remove a member that is still assigned to a project or task.
func (s *Store) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.TeamMember
		if err := tx.Select("id").First(&member, "id = ?", id).Error; err != nil {
			return err
		}

		var refs int64
		if err := tx.Model(&models.ProjectMember{}).Where("team_member_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs == 0 {
			if err := tx.Model(&models.TaskAssignment{}).Where("team_member_id = ?", id).Count(&refs).Error; err != nil {
				return err
			}
		}
		if refs > 0 {
			return ErrInUse
		}

		return tx.Delete(&models.TeamMember{}, "id = ?", id).Error
	})
	if err != nil {
		return translateDelete(err)
	}
	s.log.Debugw("team member deleted", "id", id)
	return nil
}

func (s *Store) TeamMemberEmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&models.TeamMember{}).Where("email = ?", email)
	if err := excludeID(q, "id", exclude).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check team member email: %w", err)
	}
	return n > 0, nil
}

// CountTeamMembers counts how many of ids exist. Callers compare the result with
// len(ids) to detect unknown references.
func (s *Store) CountTeamMembers(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.TeamMember{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count team members: %w", err)
	}
	return n, nil
}
