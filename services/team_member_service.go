// Package services holds the business rules that sit between HTTP handlers and
// the repository: uniqueness, referential integrity and authentication.
package services

import (
	"context"
	"errors"

	"taskboard/models"
	"taskboard/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TeamMemberService struct {
	members repository.TeamMembers
	log     *zap.SugaredLogger
}

func NewTeamMemberService(members repository.TeamMembers, log *zap.SugaredLogger) *TeamMemberService {
	return &TeamMemberService{members: members, log: log.Named("team_members")}
}

// Create adds a team member after checking the email is free.
func (s *TeamMemberService) Create(ctx context.Context, f models.TeamMemberFields) (*models.TeamMember, error) {
	taken, err := s.members.TeamMemberEmailTaken(ctx, f.Email, uuid.Nil)
	if err != nil {
		return nil, internal("Error creating team member", err)
	}
	if taken {
		return nil, conflict("Email already in use")
	}

	member, err := s.members.CreateTeamMember(ctx, f)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, conflict("Email already in use")
	case err != nil:
		return nil, internal("Error creating team member", err)
	}
	s.log.Infow("team member created", "id", member.ID)
	return member, nil
}

func (s *TeamMemberService) Get(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	member, err := s.members.TeamMember(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound("Team member not found")
	case err != nil:
		return nil, internal("Error fetching team member", err)
	}
	return member, nil
}

func (s *TeamMemberService) List(ctx context.Context, page models.Page) (models.PageResult[models.TeamMember], error) {
	members, total, err := s.members.ListTeamMembers(ctx, page)
	if err != nil {
		return models.PageResult[models.TeamMember]{}, internal("Error fetching team members", err)
	}
	return models.NewPageResult(members, total, page), nil
}

// Update applies a partial change. A missing member wins over any other problem.
func (s *TeamMemberService) Update(ctx context.Context, id uuid.UUID, patch models.TeamMemberPatch) (*models.TeamMember, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if patch.Email != nil {
		taken, err := s.members.TeamMemberEmailTaken(ctx, *patch.Email, id)
		if err != nil {
			return nil, internal("Error updating team member", err)
		}
		if taken {
			return nil, conflict("Email already in use")
		}
	}

	member, err := s.members.UpdateTeamMember(ctx, id, patch)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound("Team member not found")
	case errors.Is(err, repository.ErrDuplicate):
		return nil, conflict("Email already in use")
	case err != nil:
		return nil, internal("Error updating team member", err)
	}
	return member, nil
}

// Delete removes a member that no project or task refers to.
func (s *TeamMemberService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.members.DeleteTeamMember(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound("Team member not found")
	case errors.Is(err, repository.ErrInUse):
		return conflict("Team member is still assigned to projects or tasks")
	case err != nil:
		return internal("Error deleting team member", err)
	}
	s.log.Infow("team member deleted", "id", id)
	return nil
}
